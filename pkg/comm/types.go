// Package comm publishes typed event messages to packet transports.
package comm

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// PacketWriterFunc is the func form of PacketWriter.
type PacketWriterFunc func([]byte) error

// WritePacket implements PacketWriter.
func (f PacketWriterFunc) WritePacket(pkt []byte) error {
	return f(pkt)
}
