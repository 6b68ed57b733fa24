package msgs

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
)

// Message Kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// Typed wraps a message with type information.
type Typed struct {
	TypeId   uint32 `protobuf:"varint,1,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Typed) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Typed) Reset() { *m = Typed{} }

// String implements proto.Message.
func (m *Typed) String() string { return proto.CompactTextString(m) }

// ErrUnknownType indicates unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

// ErrNotEvent indicates an event was expected.
var ErrNotEvent = errors.New("message is not an event")

// SerializableMessage can be serialized over the wire.
type SerializableMessage interface {
	proto.Message
	TypeID() uint32
	NewMessage() SerializableMessage
}

// MessageTypes are predefined mapping of type ID to messages.
var MessageTypes = map[uint32]SerializableMessage{
	StatusReportTypeID: (*StatusReport)(nil),
}

// TypedFrom creates a Typed from a serializable message.
func TypedFrom(msg SerializableMessage) (*Typed, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Typed{TypeId: msg.TypeID(), Message: data}, nil
}

// Decode decodes the packet into actual message.
func (p *Typed) Decode() (SerializableMessage, error) {
	msgType, ok := MessageTypes[p.TypeId]
	if !ok {
		return nil, &ErrUnknownType{TypeID: p.TypeId}
	}
	msg := msgType.NewMessage()
	if err := proto.Unmarshal(p.Message, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode encodes the Typed to bytes.
func (p *Typed) Encode() ([]byte, error) {
	return proto.Marshal(p)
}

// Kind gets message kind from type ID.
func (p *Typed) Kind() uint32 {
	return p.TypeId & TypeIDMaskKind
}

// IsEvent determines if the message is an event.
func (p *Typed) IsEvent() bool {
	return p.Kind() == TypeIDKindEvent
}

// DecodeTyped decodes bytes into Typed.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}
