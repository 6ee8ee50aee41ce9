package logdnasdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_EncodeKeepsInsertionOrder(t *testing.T) {
	params := Params{}.
		Add("ts", "1").
		Add("email", "a@b.co").
		Add("id", "x")

	assert.Equal(t, "ts=1&email=a%40b.co&id=x", params.Encode())
}

func TestParams_EncodeEscaping(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "space", value: "a b", want: "a%20b"},
		{name: "unreserved marks", value: "-_.!~*'()", want: "-_.!~*'()"},
		{name: "reserved", value: "a+b&c=d/e:f", want: "a%2Bb%26c%3Dd%2Fe%3Af"},
		{name: "utf8", value: "é", want: "%C3%A9"},
		{name: "quotes", value: `"timed out"`, want: "%22timed%20out%22"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "q="+tt.want, Params{}.Add("q", tt.value).Encode())
		})
	}
}

func TestParams_GetHasWithout(t *testing.T) {
	params := Params{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "a", Value: "3"}}

	assert.Equal(t, "1", params.Get("a"))
	assert.Equal(t, "", params.Get("missing"))
	assert.True(t, params.Has("b"))

	without := params.Without("a")
	assert.Equal(t, Params{{Key: "b", Value: "2"}}, without)
	assert.Len(t, params, 3, "Without must not modify the receiver")
}
