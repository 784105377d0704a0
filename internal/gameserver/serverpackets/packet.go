package serverpackets

// Packet is an outbound notification that can serialize itself into one
// text line.
type Packet interface {
	Write() ([]byte, error)
}
