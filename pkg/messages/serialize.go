package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/cbodonnell/tycoon/pkg/game/types"
)

// SerializeMessage encodes a message as a JSON text frame.
func SerializeMessage(m *Message) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}
	return b, nil
}

// DeserializeMessage decodes a JSON text frame.
func DeserializeMessage(data []byte) (*Message, error) {
	m := &Message{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}
	return m, nil
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create cbor encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}{}),
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create cbor decoder: %v", err))
	}
}

// SerializeGameState encodes a snapshot for the persistence gateway as
// zstd-compressed CBOR.
func SerializeGameState(state *types.GameState) ([]byte, error) {
	b, err := encMode.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize game state: %v", err)
	}
	return compress(b)
}

// DeserializeGameState decodes a snapshot written by SerializeGameState.
func DeserializeGameState(data []byte) (*types.GameState, error) {
	b, err := decompress(data)
	if err != nil {
		return nil, err
	}
	state := &types.GameState{}
	if err := decMode.Unmarshal(b, state); err != nil {
		return nil, fmt.Errorf("failed to deserialize game state: %v", err)
	}
	return state, nil
}

// SerializeEvent encodes one event for the persisted replay log.
func SerializeEvent(event types.Event) ([]byte, error) {
	b, err := encMode.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event: %v", err)
	}
	return b, nil
}

func DeserializeEvent(data []byte) (types.Event, error) {
	var event types.Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return types.Event{}, fmt.Errorf("failed to deserialize event: %v", err)
	}
	return event, nil
}

func compress(b []byte) ([]byte, error) {
	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress snapshot: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}
	return compressed.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()
	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed snapshot: %v", err)
	}
	return b, nil
}
