package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestImage(t *testing.T) {
	tests := []struct {
		name string
		imgs []image
		want string
	}{
		{"empty", nil, ""},
		{"prefers 500", []image{{Quality: "150x150", Link: "s"}, {Quality: "500x500", Link: "l"}}, "l"},
		{"then 150", []image{{Quality: "50x50", Link: "xs"}, {Quality: "150x150", URL: "s"}}, "s"},
		{"then last", []image{{Quality: "50x50", Link: "a"}, {Quality: "1000x1000", URL: "b"}}, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestImage(tt.imgs))
		})
	}
}

func TestAudioURL(t *testing.T) {
	all := []image{{Quality: "96kbps", Link: "96"}, {Quality: "160kbps", Link: "160"}, {Quality: "320kbps", Link: "320"}}
	assert.Equal(t, "160", audioURL(all, qualityStandard))
	assert.Equal(t, "320", audioURL(all, qualityHigh))
	assert.Equal(t, "96", audioURL(all[:1], qualityStandard))
	assert.Equal(t, "x", audioURL([]image{{Quality: "12kbps", Link: "y"}, {Quality: "48kbps", Link: "x"}}, qualityStandard))
	assert.Empty(t, audioURL(nil, qualityStandard))
	assert.Empty(t, exactAudioURL(all[:2], qualityHigh))
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A flexInt `json:"a"`
		B flexInt `json:"b"`
		C flexInt `json:"c"`
		D flexInt `json:"d"`
		E flexInt `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "34", "c": null, "d": "n/a", "e": 5.9}`), &v))

	assert.Equal(t, flexInt(12), v.A)
	assert.Equal(t, flexInt(34), v.B)
	assert.Equal(t, flexInt(0), v.C)
	assert.Equal(t, flexInt(0), v.D)
	assert.Equal(t, flexInt(5), v.E)
}

func TestText_DecodesEntities(t *testing.T) {
	assert.Equal(t, `Rock "n" Roll & <Blues> 'Live'`, text(`Rock &quot;n&quot; Roll &amp; &lt;Blues&gt; &#39;Live&apos;`))
}
