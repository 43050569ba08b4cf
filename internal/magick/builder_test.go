package magick

import (
	"reflect"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		divisor int
		want    string
	}{
		{1, "100%"},
		{2, "50%"},
		{4, "25%"},
		{8, "12.5%"},
		{0, "100%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.divisor); got != tt.want {
			t.Errorf("Percent(%d) = %q, want %q", tt.divisor, got, tt.want)
		}
	}
}

func TestMogrify(t *testing.T) {
	got := Mogrify("12.5%", "/s/00/images_8/frame_0001.png")
	want := []string{"mogrify", "-resize", "12.5%", "/s/00/images_8/frame_0001.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
