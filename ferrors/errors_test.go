package ferrors

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFontNotFoundMessage(t *testing.T) {
	err := &FontNotFound{Name: "Comic Sans"}
	assert.Contains(t, err.Error(), "Comic Sans")
}

func TestFontLoadUnwraps(t *testing.T) {
	cause := errors.New("disk gone")
	err := &FontLoad{Path: "/tmp/x.ttf", Cause: cause}
	assert.ErrorIs(t, err, cause)
}

func TestTimeoutPhaseMessage(t *testing.T) {
	err := TimeoutPhase("post-shape", 30*time.Second)
	assert.Equal(t, "Operation 'post-shape' timed out after 30s", err.Reason)
}

func TestErrorsAsDiscriminates(t *testing.T) {
	var err error = &GlyphNotFound{GlyphID: 7, Path: "a.ttf"}
	var gnf *GlyphNotFound
	assert.True(t, errors.As(err, &gnf))
	assert.Equal(t, uint32(7), gnf.GlyphID)

	var fnf *FontNotFound
	assert.False(t, errors.As(err, &fnf))
}
