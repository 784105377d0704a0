package clientpackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/battlecore/internal/gameserver/packet"
)

func TestParseUseSkill(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		want    *UseSkill
		wantErr bool
	}{
		{"monster", "12 u_s 220 0 7", &UseSkill{CastID: 220, TargetKind: TargetMonster, TargetID: 7}, false},
		{"self", "12 u_s 221 1 1", &UseSkill{CastID: 221, TargetKind: TargetCharacter, TargetID: 1}, false},
		{"with position", "12 u_s 220 0 7 15 16", &UseSkill{CastID: 220, TargetID: 7, HasPosition: true, X: 15, Y: 16}, false},
		{"odd trailing token ignored", "12 u_s 220 0 7 15", &UseSkill{CastID: 220, TargetID: 7}, false},
		{"bad position", "12 u_s 220 0 7 x 16", nil, true},
		{"missing target", "12 u_s 220 0", nil, true},
		{"unknown kind", "12 u_s 220 3 7", nil, true},
		{"not a number", "12 u_s slash 0 7", nil, true},
		{"cast id overflow", "12 u_s 40000 0 7", nil, true},
		{"empty", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseUseSkill([]byte(tt.line))
			if tt.wantErr {
				assert.ErrorIs(t, err, packet.ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUseZoneSkill(t *testing.T) {
	t.Parallel()

	got, err := ParseUseZoneSkill([]byte("3 u_as 223 20 21"))
	require.NoError(t, err)
	assert.Equal(t, &UseZoneSkill{CastID: 223, X: 20, Y: 21}, got)

	for _, line := range []string{"3 u_as 223 20", "3 u_as 223 a 21", "3 u_as"} {
		_, err := ParseUseZoneSkill([]byte(line))
		assert.ErrorIs(t, err, packet.ErrMalformed, line)
	}
}

func TestParseMultiTargetList(t *testing.T) {
	t.Parallel()

	got, err := ParseMultiTargetList([]byte("5 mtlist 2 220 7 222 8"))
	require.NoError(t, err)
	assert.Equal(t, []MultiTargetPair{{CastID: 220, MonsterID: 7}, {CastID: 222, MonsterID: 8}}, got.Pairs)

	got, err = ParseMultiTargetList([]byte("5 mtlist 0"))
	require.NoError(t, err)
	assert.Empty(t, got.Pairs)

	got, err = ParseMultiTargetList([]byte("5 mtlist 2 220 7 222"))
	require.NoError(t, err)
	assert.Len(t, got.Pairs, 1, "unpaired trailing token is dropped")

	for _, line := range []string{"5 mtlist", "5 mtlist 1 220 x"} {
		_, err := ParseMultiTargetList([]byte(line))
		assert.ErrorIs(t, err, packet.ErrMalformed, line)
	}
}

func TestParseLogin(t *testing.T) {
	t.Parallel()

	got, err := ParseLogin([]byte("0 login 2"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.CharacterID)

	_, err = ParseLogin([]byte("0 login bob"))
	assert.ErrorIs(t, err, packet.ErrMalformed)
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	kw, err := Keyword([]byte("17 u_s 220 0 7"))
	require.NoError(t, err)
	assert.Equal(t, KeywordUseSkill, kw)

	_, err = Keyword([]byte("17"))
	assert.ErrorIs(t, err, packet.ErrMalformed)
}
