package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/txtest/pkg/tx"
)

// GroupTx is the message group of the transmitter front end.
const GroupTx uint32 = 0x00010000

// TypeIDs
const (
	StatusReportTypeID uint32 = GroupTx | TypeIDKindEvent | 0x0001
)

// StatusReport is an Event message carrying the report of one period.
type StatusReport struct {
	Device     string   `protobuf:"bytes,1,opt,name=device,proto3" json:"device,omitempty"`
	Counter    uint32   `protobuf:"varint,2,opt,name=counter,proto3" json:"counter"`
	ADC        []uint32 `protobuf:"varint,3,rep,packed,name=adc,proto3" json:"adc,omitempty"`
	TxPPS      uint32   `protobuf:"varint,4,opt,name=tx_pps,proto3" json:"tx_pps"`
	Received   uint32   `protobuf:"varint,5,opt,name=received,proto3" json:"received"`
	RSSI       uint32   `protobuf:"varint,6,opt,name=rssi,proto3" json:"rssi"`
	RemoteRSSI uint32   `protobuf:"varint,7,opt,name=remote_rssi,proto3" json:"remote_rssi"`
	RxPPS      uint32   `protobuf:"varint,8,opt,name=rx_pps,proto3" json:"rx_pps"`
	Flags      uint32   `protobuf:"varint,9,opt,name=flags,proto3" json:"flags"`
	FlightMode uint32   `protobuf:"varint,10,opt,name=flight_mode,proto3" json:"flight_mode"`
	LinkState  string   `protobuf:"bytes,11,opt,name=link_state,proto3" json:"link_state,omitempty"`
	Yellow     uint32   `protobuf:"varint,12,opt,name=yellow,proto3" json:"yellow"`
	Green      uint32   `protobuf:"varint,13,opt,name=green,proto3" json:"green"`
	Tones      []string `protobuf:"bytes,14,rep,name=tones,proto3" json:"tones,omitempty"`
	BindMode   string   `protobuf:"bytes,15,opt,name=bind_mode,proto3" json:"bind_mode,omitempty"`
	Protocol   string   `protobuf:"bytes,16,opt,name=protocol,proto3" json:"protocol,omitempty"`
	Line       string   `protobuf:"bytes,17,opt,name=line,proto3" json:"line,omitempty"`
}

// NewStatusReport converts a report.
func NewStatusReport(device string, r *tx.Report) *StatusReport {
	m := &StatusReport{
		Device:     device,
		Counter:    uint32(r.Counter),
		ADC:        make([]uint32, len(r.ADC)),
		TxPPS:      uint32(r.TxPPS),
		Received:   uint32(r.Received),
		RSSI:       uint32(r.RSSI),
		RemoteRSSI: uint32(r.RemoteRSSI),
		RxPPS:      uint32(r.RxPPS),
		Flags:      uint32(r.Status.Flags),
		FlightMode: uint32(r.Status.FlightMode),
		LinkState:  r.Feedback.State.String(),
		Yellow:     uint32(r.Feedback.Yellow),
		Green:      uint32(r.Feedback.Green),
		BindMode:   r.BindMode.String(),
		Protocol:   r.Protocol.String(),
		Line:       r.Line(),
	}
	for i, v := range r.ADC {
		m.ADC[i] = uint32(v)
	}
	for _, t := range r.Feedback.Tones.Tunes() {
		m.Tones = append(m.Tones, t.String())
	}
	return m
}

// NewMessage implements SerializableMessage.
func (m *StatusReport) NewMessage() SerializableMessage { return &StatusReport{} }

// TypeID implements SerializableMessage.
func (m *StatusReport) TypeID() uint32 { return StatusReportTypeID }

// ProtoMessage implements proto.Message.
func (m *StatusReport) ProtoMessage() {}

// Reset implements proto.Message.
func (m *StatusReport) Reset() { *m = StatusReport{} }

// String implements proto.Message.
func (m *StatusReport) String() string { return proto.CompactTextString(m) }
