package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetMailerSendsLinkAndCode(t *testing.T) {
	m := NewPasswordResetMailer("smtp.example.com", "587", "", "", "no-reply@glamoure.io", false, "https://app.glamoure.io/")

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Nil(t, a)
		return nil
	}

	err := m.SendPasswordReset(context.Background(), "a@x.com", "tok+en/1", "482913", "Ada")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"a@x.com"}, gotTo)
	assert.Contains(t, gotMsg, "To: a@x.com\r\n")
	assert.Contains(t, gotMsg, "Hello Ada,")
	assert.Contains(t, gotMsg, "https://app.glamoure.io/reset-password?token=tok%2Ben%2F1")
	assert.Contains(t, gotMsg, "482913")
}

func TestPasswordResetMailerErrors(t *testing.T) {
	var nilMailer *PasswordResetMailer
	assert.Error(t, nilMailer.SendPasswordReset(context.Background(), "a@x.com", "t", "1", ""))

	m := NewPasswordResetMailer("", "587", "", "", "no-reply@glamoure.io", false, "")
	assert.Error(t, m.SendPasswordReset(context.Background(), "a@x.com", "t", "1", ""))

	m = NewPasswordResetMailer("smtp.example.com", "587", "user", "pass", "no-reply@glamoure.io", false, "")
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("421 service not available")
	}
	assert.EqualError(t, m.SendPasswordReset(context.Background(), "a@x.com", "t", "1", ""), "421 service not available")
}

func TestPasswordResetMailerHonoursDeadline(t *testing.T) {
	m := NewPasswordResetMailer("smtp.example.com", "587", "", "", "no-reply@glamoure.io", false, "")
	release := make(chan struct{})
	defer close(release)
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := m.SendPasswordReset(ctx, "a@x.com", "t", "1", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuildMessageWithoutName(t *testing.T) {
	m := NewPasswordResetMailer("h", "25", "", "", "from@x.com", false, "")
	msg := string(m.buildMessage("a@x.com", "tok", "123456", "  "))
	assert.True(t, strings.Contains(msg, "Hello,\n"))
	assert.Contains(t, msg, "/reset-password?token=tok")
}
