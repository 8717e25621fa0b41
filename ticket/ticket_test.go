package ticket

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Decode_RoundTrip(t *testing.T) {
	raw := Encode("B123", "deadbeef", "cafef00d")
	d, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "B123", d.BearerId())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, d.CustomerKey())
	assert.Equal(t, []byte{0xca, 0xfe, 0xf0, 0x0d}, d.EventKey())
	assert.Equal(t, "deadbeef", d.CustomerKeyHex())
	assert.Equal(t, "cafef00d", d.EventKeyHex())

	again, err := Decode(d.Encode())
	require.NoError(t, err)
	assert.True(t, d.Equal(again))
	assert.Equal(t, raw, again.Encode())
}

func Test_Decode_RoundTrip_Many(t *testing.T) {
	cases := []struct{ bearer, ck, ek string }{
		{"", "00", "ff"},
		{"with space and ünicode", "0102030405060708090a0b0c0d0e0f10", "a0"},
		{"x", strings.Repeat("ab", 64), strings.Repeat("cd", 20)},
	}
	for _, c := range cases {
		d, err := Decode(Encode(c.bearer, c.ck, c.ek))
		require.NoError(t, err)
		assert.Equal(t, c.bearer, d.BearerId())
		assert.Equal(t, c.ck, d.CustomerKeyHex())
		assert.Equal(t, c.ek, d.EventKeyHex())
	}
}

func Test_Decode_IsIdempotent(t *testing.T) {
	raw := Encode("B1", "0011", "2233")
	d1, err1 := Decode(raw)
	d2, err2 := Decode(raw)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.True(t, d1.Equal(d2))

	_, err1 = Decode("!!!")
	_, err2 = Decode("!!!")
	assert.Equal(t, err1, err2)
}

func Test_Decode_LenientBase64(t *testing.T) {
	json := `{"t":"B1","ck":"00ff","ek":"ff00"}`
	for _, raw := range []string{
		base64.StdEncoding.EncodeToString([]byte(json)),
		base64.RawStdEncoding.EncodeToString([]byte(json)),
		base64.URLEncoding.EncodeToString([]byte(json)),
		"  " + base64.StdEncoding.EncodeToString([]byte(json)) + "\n",
	} {
		d, err := Decode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "B1", d.BearerId())
	}
}

func Test_Decode_InvalidBase64(t *testing.T) {
	assertDecodeError(t, "not base64 at all!", ReasonInvalidBase64, "")
}

func Test_Decode_InvalidJSON(t *testing.T) {
	assertDecodeError(t, b64("{nope"), ReasonInvalidJSON, "")
	assertDecodeError(t, b64(`["t","ck","ek"]`), ReasonInvalidJSON, "")
	assertDecodeError(t, b64(`"a string"`), ReasonInvalidJSON, "")
	assertDecodeError(t, b64(`null`), ReasonInvalidJSON, "")
	assertDecodeError(t, "", ReasonInvalidJSON, "")
}

func Test_Decode_MissingField(t *testing.T) {
	assertDecodeError(t, b64(`{"ck":"00","ek":"00"}`), ReasonMissingField, "t")
	assertDecodeError(t, b64(`{"t":"B","ek":"00"}`), ReasonMissingField, "ck")
	assertDecodeError(t, b64(`{"t":"B","ck":"00"}`), ReasonMissingField, "ek")
	assertDecodeError(t, b64(`{"t":"B","ck":"00","ek":null}`), ReasonMissingField, "ek")
}

func Test_Decode_InvalidField(t *testing.T) {
	assertDecodeError(t, b64(`{"t":123,"ck":"00","ek":"00"}`), ReasonInvalidField, "t")
	assertDecodeError(t, b64(`{"t":"B","ck":"abc","ek":"00"}`), ReasonInvalidField, "ck")
	assertDecodeError(t, b64(`{"t":"B","ck":"00","ek":"zz"}`), ReasonInvalidField, "ek")
	assertDecodeError(t, b64(`{"t":"B","ck":"00","ek":42}`), ReasonInvalidField, "ek")
	assertDecodeError(t, Encode("a:b", "deadbeef", "cafef00d"), ReasonInvalidField, "t")
	assertDecodeError(t, Encode("a::b", "deadbeef", "cafef00d"), ReasonInvalidField, "t")
	assertDecodeError(t, Encode(":", "deadbeef", "cafef00d"), ReasonInvalidField, "t")
}

func Test_Decode_EmptyKeysDecode(t *testing.T) {
	// empty hex is valid hex; derivation is what rejects it
	d, err := Decode(Encode("B", "", ""))
	require.NoError(t, err)
	assert.Len(t, d.CustomerKey(), 0)
	assert.Len(t, d.EventKey(), 0)
}

func Test_Descriptor_IsImmutable(t *testing.T) {
	key := []byte{1, 2, 3}
	d := New("B", key, key)
	key[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, d.CustomerKey())

	out := d.EventKey()
	out[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, d.EventKey())
}

func Test_DecodeError_Message(t *testing.T) {
	_, err := Decode(b64(`{"t":"B","ck":"00"}`))
	assert.Equal(t, `ticket: missing_field "ek"`, err.Error())

	_, err = Decode(b64(`{"t":"B","ck":"0","ek":"00"}`))
	assert.True(t, strings.HasPrefix(err.Error(), `ticket: invalid_field "ck" - `))
}

func assertDecodeError(t *testing.T, raw string, reason Reason, field string) {
	t.Helper()
	d, err := Decode(raw)
	require.Error(t, err)
	assert.True(t, d.Equal(Descriptor{}))

	var de *DecodeError
	require.True(t, errors.As(err, &de), err.Error())
	assert.Equal(t, reason, de.Reason, raw)
	assert.Equal(t, field, de.Field, raw)
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
