package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{2.5, "2.50 sec"},
		{1.0, "1.00 sec"},
		{0.0376, "37.60 msec"},
		{0.001, "1.00 msec"},
		{0.000004, "4.00 usec"},
		{0.0000000021, "2.10 nsec"},
		{0, "0.00 nsec"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Seconds(tc.seconds), "input %g", tc.seconds)
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "20.00 msec", Duration(20*time.Millisecond))
	assert.Equal(t, "1.50 sec", Duration(1500*time.Millisecond))
	assert.Equal(t, "750.00 usec", Duration(750*time.Microsecond))
}
