package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinCreatesRoom(t *testing.T) {
	reg := NewRegistry(4)

	member, err := reg.Join("general", "alice")
	require.NoError(t, err)
	require.NotNil(t, member)

	assert.Equal(t, []string{"general"}, reg.Rooms())
	assert.Equal(t, 1, reg.MemberCount("general"))
}

func TestJoinRejectsDuplicateUsername(t *testing.T) {
	reg := NewRegistry(4)

	_, err := reg.Join("general", "alice")
	require.NoError(t, err)

	_, err = reg.Join("general", "alice")
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Equal(t, 1, reg.MemberCount("general"))

	// same username in a different room is fine
	_, err = reg.Join("random", "alice")
	assert.NoError(t, err)
}

func TestLastLeaveTearsDownRoom(t *testing.T) {
	reg := NewRegistry(4)

	alice, err := reg.Join("general", "alice")
	require.NoError(t, err)
	_, err = reg.Join("general", "bob")
	require.NoError(t, err)

	assert.True(t, reg.Leave("general", "bob"))
	assert.Equal(t, 1, reg.MemberCount("general"))
	assert.Equal(t, []string{"general"}, reg.Rooms())

	assert.True(t, reg.Leave("general", "alice"))
	assert.Empty(t, reg.Rooms())
	assert.Zero(t, reg.MemberCount("general"))

	// double leave reports the member as already gone
	assert.False(t, reg.Leave("general", "alice"))

	// channel closed so the writer loop can exit
	_, open := <-alice.Out
	assert.False(t, open)
}

func TestBroadcastReachesEveryMember(t *testing.T) {
	reg := NewRegistry(4)

	alice, err := reg.Join("general", "alice")
	require.NoError(t, err)
	bob, err := reg.Join("general", "bob")
	require.NoError(t, err)

	reg.Broadcast("general", "alice: hi")

	assert.Equal(t, "alice: hi", <-alice.Out)
	assert.Equal(t, "alice: hi", <-bob.Out)
}

func TestBroadcastDropsSlowConsumer(t *testing.T) {
	reg := NewRegistry(1)

	slow, err := reg.Join("general", "slow")
	require.NoError(t, err)
	fast, err := reg.Join("general", "fast")
	require.NoError(t, err)

	// first message fills slow's buffer, second overflows it
	reg.Broadcast("general", "one")
	assert.Equal(t, "one", <-fast.Out)
	reg.Broadcast("general", "two")
	assert.Equal(t, "two", <-fast.Out)

	assert.Equal(t, 1, reg.MemberCount("general"))

	assert.Equal(t, "one", <-slow.Out)
	_, open := <-slow.Out
	assert.False(t, open)

	// the ejected member is already out, so a later Leave is a no-op and
	// must not produce a farewell
	assert.False(t, reg.Leave("general", "slow"))
}

func TestBroadcastToUnknownRoomIsNoop(t *testing.T) {
	reg := NewRegistry(4)
	reg.Broadcast("nowhere", "hello")
	assert.Empty(t, reg.Rooms())
}

func TestRoomsAreSorted(t *testing.T) {
	reg := NewRegistry(4)

	for _, room := range []string{"zulu", "alpha", "mike"} {
		_, err := reg.Join(room, "alice")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, reg.Rooms())
}
