package cnpj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigits(t *testing.T) {
	assert.Equal(t, "11222333000181", Digits("11.222.333/0001-81"))
	assert.Equal(t, "", Digits("abc"))
	assert.Equal(t, "123", Digits(" 1-2 3 "))
}

func TestCheckDigits(t *testing.T) {
	dv, err := CheckDigits("11.222.333/0001")
	require.NoError(t, err)
	assert.Equal(t, "81", dv)

	_, err = CheckDigits("123")
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"11.222.333/0001-82", false},
		{"11.111.111/1111-11", false}, // dígito repetido
		{"11.222.333/0001", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Valid(tc.in), tc.in)
	}
}

func TestFormat(t *testing.T) {
	f, ok := Format("11222333000181")
	assert.True(t, ok)
	assert.Equal(t, "11.222.333/0001-81", f)

	f, ok = Format(" 11.222.333/0001-81 ")
	assert.True(t, ok)
	assert.Equal(t, "11.222.333/0001-81", f)

	_, ok = Format("1234")
	assert.False(t, ok)
}
