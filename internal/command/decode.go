package command

import (
	"encoding/json"

	"github.com/canvasengine/canvascore/internal/canvaserr"
)

// Deserialize reconstructs a Command from its wire record without
// touching any scene graph — the payload already carries everything
// Execute/Undo need, including the previous-state snapshots captured at
// original construction time.
func Deserialize(sc SerializedCommand) (Command, error) {
	switch sc.Type {
	case TypeMove:
		var p MovePayload
		if err := json.Unmarshal(sc.Payload, &p); err != nil {
			return nil, err
		}
		return &Move{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, payload: p}, nil
	case TypeResize:
		var p ResizePayload
		if err := json.Unmarshal(sc.Payload, &p); err != nil {
			return nil, err
		}
		return &Resize{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, payload: p}, nil
	case TypeReparent:
		var p ReparentPayload
		if err := json.Unmarshal(sc.Payload, &p); err != nil {
			return nil, err
		}
		return &Reparent{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, payload: p, valid: true}, nil
	case TypeStyleChange:
		var p StyleChangePayload
		if err := json.Unmarshal(sc.Payload, &p); err != nil {
			return nil, err
		}
		return &StyleChange{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, payload: p}, nil
	case TypeCreate:
		var p CreatePayload
		if err := json.Unmarshal(sc.Payload, &p); err != nil {
			return nil, err
		}
		return &Create{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, payload: p}, nil
	case TypeDelete:
		var p DeletePayload
		if err := json.Unmarshal(sc.Payload, &p); err != nil {
			return nil, err
		}
		return &Delete{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, payload: p}, nil
	case TypeBatch:
		var entries []SerializedCommand
		if err := json.Unmarshal(sc.Payload, &entries); err != nil {
			return nil, err
		}
		commands := make([]Command, len(entries))
		for i, e := range entries {
			cmd, err := Deserialize(e)
			if err != nil {
				return nil, err
			}
			commands[i] = cmd
		}
		return &Batch{id: sc.ID, timestamp: sc.Timestamp, description: sc.Description, commands: commands}, nil
	default:
		return nil, canvaserr.ErrUnknownCommandType
	}
}
