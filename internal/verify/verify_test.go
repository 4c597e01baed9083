package verify

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const aliceHash = "$isha256$8934029034$10fa39687675ee39bbdce930101a250e01b822af4b56b55187c6cbc6340bd8e0"

func TestIteratedSHA256_KnownDigests(t *testing.T) {
	tests := []struct {
		user, password, salt string
		rounds               int
		want                 string
	}{
		{"alice", "F4ceb00k", "8934029034", 256, "10fa39687675ee39bbdce930101a250e01b822af4b56b55187c6cbc6340bd8e0"},
		{"alice", "F4ceb00k", "8934029034", 1, "b288a0e72aeea5f3a25e68aeedabc50c64d2ae805a3ba2da8bf747649e7ce116"},
		{"bob", "p4ssword", "s1", 3, "8888033c982bc3886dc77a4d78ae451851cf0061761a110dee62ad150931a8fd"},
	}
	for _, tt := range tests {
		got := IteratedSHA256(tt.user, tt.password, tt.salt, tt.rounds)
		assert.Equal(t, tt.want, hex.EncodeToString(got))
	}
}

func TestParseIterated(t *testing.T) {
	c, err := ParseIterated("alice", aliceHash)
	require.NoError(t, err)
	assert.Equal(t, "8934029034", c.Salt)
	assert.Equal(t, DefaultRounds, c.Rounds)
	assert.Equal(t, aliceHash, c.String())

	c, err = ParseIterated("bob", "$isha256$rounds=3$s1$8888033c982bc3886dc77a4d78ae451851cf0061761a110dee62ad150931a8fd")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Rounds)
	ok, err := c.Verify("p4ssword")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseIterated_Malformed(t *testing.T) {
	for _, h := range []string{
		"$5$abc$def",
		"$isha256$onlysalt",
		"$isha256$salt$nothex",
		"$isha256$salt$abcd",
		"$isha256$rounds=x$salt$10fa39687675ee39bbdce930101a250e01b822af4b56b55187c6cbc6340bd8e0",
		"$isha256$cost=2$salt$10fa39687675ee39bbdce930101a250e01b822af4b56b55187c6cbc6340bd8e0",
	} {
		_, err := ParseIterated("alice", h)
		assert.ErrorIs(t, err, ErrUnsupportedAlg, h)
	}
}

func TestDetectAlg(t *testing.T) {
	tests := map[string]string{
		aliceHash:       AlgIteratedSHA256,
		"$1$salt$x":     AlgMD5,
		"$5$salt$x":     AlgSHA256,
		"$6$salt$x":     AlgSHA512,
		"$2b$10$x":      AlgBcrypt,
		"$2y$10$x":      AlgBcrypt,
		"$y$j9T$salt$x": AlgYescrypt,
	}
	for h, want := range tests {
		got, err := DetectAlg(h)
		require.NoError(t, err, h)
		assert.Equal(t, want, got, h)
	}

	_, err := DetectAlg("plaintext")
	assert.ErrorIs(t, err, ErrUnsupportedAlg)
}

func TestNew_Iterated(t *testing.T) {
	v, err := New(AlgIteratedSHA256, "alice", aliceHash)
	require.NoError(t, err)

	ok, err := v.Verify("F4ceb00k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("facebook")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	alg, err := DetectAlg(string(hash))
	require.NoError(t, err)
	v, err := New(alg, "carol", string(hash))
	require.NoError(t, err)

	ok, err := v.Verify("s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Verify("secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_UnknownAlg(t *testing.T) {
	_, err := New("rot13", "u", "x")
	assert.Error(t, err)
}

func TestCryptVerifier_Mismatch(t *testing.T) {
	v, err := New(AlgSHA512, "u", "$6$saltsalt$hash")
	require.NoError(t, err)

	ok, err := v.Verify("x")
	if err != nil {
		assert.True(t, errors.Is(err, ErrCryptUnsupported) || strings.Contains(err.Error(), "crypt"), err.Error())
		return
	}
	assert.False(t, ok)
}

func TestFindHash(t *testing.T) {
	file := "root:!:19000:0:99999:7:::\nalice:" + aliceHash + ":19000::::::\nbob::19000\n"

	h, err := FindHash(strings.NewReader(file), "alice")
	require.NoError(t, err)
	assert.Equal(t, aliceHash, h)

	_, err = FindHash(strings.NewReader(file), "bob")
	assert.ErrorIs(t, err, ErrUnsupportedAlg)

	_, err = FindHash(strings.NewReader(file), "mallory")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoadHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadow")
	require.NoError(t, os.WriteFile(path, []byte("alice:"+aliceHash+"\n"), 0o600))

	h, err := LoadHash(path, "alice")
	require.NoError(t, err)
	assert.Equal(t, aliceHash, h)

	_, err = LoadHash(filepath.Join(t.TempDir(), "missing"), "alice")
	assert.Error(t, err)
}
