package quill

import (
	"encoding/json"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// ToJSON serializes the mail to JSON for queue handoff or archival.
func (m *Mail) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON deserializes a mail from JSON.
func FromJSON(data []byte) (*Mail, error) {
	var m Mail
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding mail JSON: %w", err)
	}
	return &m, nil
}

// ToMessagePack serializes the mail to MessagePack. MessagePack is more
// compact than JSON for message bodies and is the preferred queue wire
// format.
func (m *Mail) ToMessagePack() ([]byte, error) {
	b := make([]byte, 0, 256+len(m.Content.Body))

	b = msgp.AppendMapHeader(b, 4)

	b = msgp.AppendString(b, "id")
	b = msgp.AppendString(b, m.ID)

	b = msgp.AppendString(b, "envelope")
	b = msgp.AppendMapHeader(b, 2)
	b = msgp.AppendString(b, "from")
	b = msgp.AppendString(b, m.Envelope.From)
	b = msgp.AppendString(b, "to")
	b = msgp.AppendArrayHeader(b, uint32(len(m.Envelope.To)))
	for _, to := range m.Envelope.To {
		b = msgp.AppendString(b, to)
	}

	b = msgp.AppendString(b, "content")
	b = msgp.AppendMapHeader(b, 2)
	b = msgp.AppendString(b, "headers")
	b = msgp.AppendArrayHeader(b, uint32(len(m.Content.Headers)))
	for _, h := range m.Content.Headers {
		// Header fields travel as [name, value] pairs to preserve order
		// and duplicates.
		b = msgp.AppendArrayHeader(b, 2)
		b = msgp.AppendString(b, h.Name)
		b = msgp.AppendString(b, h.Value)
	}
	b = msgp.AppendString(b, "body")
	b = msgp.AppendBytes(b, m.Content.Body)

	b = msgp.AppendString(b, "queued_at")
	b = msgp.AppendTime(b, m.QueuedAt)

	return b, nil
}

// FromMessagePack deserializes a mail from MessagePack.
func FromMessagePack(data []byte) (*Mail, error) {
	var m Mail

	sz, data, err := msgp.ReadMapHeaderBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding mail: %w", err)
	}

	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, data, err = msgp.ReadMapKeyZC(data)
		if err != nil {
			return nil, fmt.Errorf("decoding mail: %w", err)
		}

		switch string(key) {
		case "id":
			m.ID, data, err = msgp.ReadStringBytes(data)

		case "envelope":
			data, err = m.Envelope.decodeMsg(data)

		case "content":
			data, err = m.Content.decodeMsg(data)

		case "queued_at":
			m.QueuedAt, data, err = msgp.ReadTimeBytes(data)

		default:
			data, err = msgp.Skip(data)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding mail field %q: %w", key, err)
		}
	}

	return &m, nil
}

func (e *Envelope) decodeMsg(data []byte) ([]byte, error) {
	sz, data, err := msgp.ReadMapHeaderBytes(data)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, data, err = msgp.ReadMapKeyZC(data)
		if err != nil {
			return nil, err
		}
		switch string(key) {
		case "from":
			e.From, data, err = msgp.ReadStringBytes(data)

		case "to":
			var n uint32
			n, data, err = msgp.ReadArrayHeaderBytes(data)
			if err != nil {
				return nil, err
			}
			e.To = make([]string, 0, n)
			for j := uint32(0); j < n; j++ {
				var to string
				to, data, err = msgp.ReadStringBytes(data)
				if err != nil {
					return nil, err
				}
				e.To = append(e.To, to)
			}

		default:
			data, err = msgp.Skip(data)
		}
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (c *Content) decodeMsg(data []byte) ([]byte, error) {
	sz, data, err := msgp.ReadMapHeaderBytes(data)
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < sz; i++ {
		var key []byte
		key, data, err = msgp.ReadMapKeyZC(data)
		if err != nil {
			return nil, err
		}
		switch string(key) {
		case "headers":
			var n uint32
			n, data, err = msgp.ReadArrayHeaderBytes(data)
			if err != nil {
				return nil, err
			}
			c.Headers = make(Headers, 0, n)
			for j := uint32(0); j < n; j++ {
				var pair uint32
				pair, data, err = msgp.ReadArrayHeaderBytes(data)
				if err != nil {
					return nil, err
				}
				if pair != 2 {
					return nil, fmt.Errorf("header entry has %d elements, want 2", pair)
				}
				var h Header
				h.Name, data, err = msgp.ReadStringBytes(data)
				if err != nil {
					return nil, err
				}
				h.Value, data, err = msgp.ReadStringBytes(data)
				if err != nil {
					return nil, err
				}
				c.Headers = append(c.Headers, h)
			}

		case "body":
			c.Body, data, err = msgp.ReadBytesBytes(data, nil)

		default:
			data, err = msgp.Skip(data)
		}
		if err != nil {
			return nil, err
		}
	}
	return data, nil
}
