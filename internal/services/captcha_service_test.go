package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptchaRoundTrip(t *testing.T) {
	s := NewCaptchaService()
	for i := 0; i < 20; i++ {
		question, answer := s.GenerateMathProblem()
		assert.NotEmpty(t, question)
		assert.GreaterOrEqual(t, answer, 0)
	}
}

func TestCaptchaVerify(t *testing.T) {
	s := NewCaptchaService()
	assert.True(t, s.Verify("7", 7))
	assert.False(t, s.Verify("8", 7))
	assert.False(t, s.Verify("seven", 7))
	assert.False(t, s.Verify("", 7))
}
