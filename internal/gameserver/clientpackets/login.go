package clientpackets

import "github.com/udisondev/battlecore/internal/gameserver/packet"

// KeywordLogin binds a connection to a character.
const KeywordLogin = "login"

// Login selects the character to play. Fields: [2] characterID.
type Login struct {
	CharacterID int64
}

// ParseLogin parses a login command.
func ParseLogin(data []byte) (*Login, error) {
	r := packet.NewReader(data)
	if err := r.Skip(2); err != nil {
		return nil, err
	}
	id, err := r.ReadLong()
	if err != nil {
		return nil, err
	}
	return &Login{CharacterID: id}, nil
}

// Keyword returns the command keyword of a line (token 1).
func Keyword(data []byte) (string, error) {
	r := packet.NewReader(data)
	if err := r.Skip(1); err != nil {
		return "", err
	}
	return r.ReadString()
}
