package alert

import (
	"bytes"
	"errors"
	"testing"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed terminal")
}

func TestPlayRequiresPrime(t *testing.T) {
	var buf bytes.Buffer
	a := New(&buf, func() bool { return true })

	a.Play()
	if buf.Len() != 0 {
		t.Error("Expected no output before Prime")
	}

	a.Prime()
	a.Play()
	if !bytes.Equal(buf.Bytes(), []byte{0x07}) {
		t.Errorf("Expected a single BEL after prime, got %v", buf.Bytes())
	}
}

func TestPlayRespectsPreference(t *testing.T) {
	var buf bytes.Buffer
	enabled := false
	a := New(&buf, func() bool { return enabled })
	a.Prime()

	a.Play()
	if buf.Len() != 0 {
		t.Error("Expected no output while preference is off")
	}

	enabled = true
	a.Play()
	if buf.Len() != 1 {
		t.Errorf("Expected one alert, got %d bytes", buf.Len())
	}
}

func TestPrimeIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	a := New(&buf, func() bool { return true })

	a.Prime()
	a.Prime()
	if !a.Primed() {
		t.Error("Expected primed state")
	}

	a.Play()
	a.Play()
	if buf.Len() != 2 {
		t.Errorf("Expected one BEL per Play call, got %d bytes", buf.Len())
	}
}

func TestPlaybackFailuresAreSwallowed(t *testing.T) {
	a := New(failingWriter{}, func() bool { return true })
	a.Prime()
	// Must not panic or surface anywhere.
	a.Play()
}

func TestNilWriterIsSafe(t *testing.T) {
	a := New(nil, func() bool { return true })
	a.Prime()
	a.Play()
}
