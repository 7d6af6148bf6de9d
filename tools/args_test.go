package tools

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysponge/spongewallet-go/models"
)

func TestNumberAcceptsStringsAndNumbers(t *testing.T) {
	var in struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":0.25,"b":" 100 ","c":null}`), &in))
	assert.Equal(t, Number("0.25"), in.A)
	assert.Equal(t, Number("100"), in.B)
	assert.Equal(t, Number(""), in.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &in))
}

func TestNumberInt(t *testing.T) {
	v, err := Number("50").Int()
	require.NoError(t, err)
	assert.Equal(t, 50, *v)

	v, err = Number("").Int()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = Number("1.5").Int()
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = Number("fifty").Int()
	assert.ErrorIs(t, err, models.ErrValidation)

	for _, huge := range []string{"18446744073709551666", "-18446744073709551616", "2147483648"} {
		_, err = Number(huge).Int()
		assert.ErrorIs(t, err, models.ErrValidation, huge)
	}

	v, err = Number("-2147483648").Int()
	require.NoError(t, err)
	assert.Equal(t, math.MinInt32, *v)
}

func TestFlag(t *testing.T) {
	var in struct {
		On  Flag `json:"on"`
		Str Flag `json:"str"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"on":true,"str":"true"}`), &in))
	assert.True(t, bool(in.On))
	assert.True(t, bool(in.Str))

	assert.Error(t, json.Unmarshal([]byte(`{"on":"yes"}`), &in))
}

func TestChainList(t *testing.T) {
	var in struct {
		L ChainList `json:"l"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"l":"base, solana,"}`), &in))
	assert.Equal(t, ChainList{models.ChainBase, models.ChainSolana}, in.L)

	require.NoError(t, json.Unmarshal([]byte(`{"l":["tempo"]}`), &in))
	assert.Equal(t, ChainList{models.ChainTempo}, in.L)
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = parseArgs([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, args)

	args, err = parseArgs(struct {
		Chain string `json:"chain"`
	}{Chain: "base"})
	require.NoError(t, err)
	assert.Equal(t, Args{"chain": "base"}, args)

	_, err = parseArgs("[1,2]")
	assert.ErrorIs(t, err, models.ErrValidation)
}
