package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/expenseshare/internal/common"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/config"
	"github.com/dmitrijs2005/expenseshare/internal/devserver/otp"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

func newService(t *testing.T, mutate func(*config.Config)) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	if mutate != nil {
		mutate(cfg)
	}
	codes := otp.NewStore(4, time.Minute, 3, otp.WithGenerator(func(int) (string, error) { return "4321", nil }))
	return NewService(NewMemoryRepository(), codes, cfg, logging.NewDiscardLogger())
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+919876543210", true},
		{"+4412345678", true},
		{"9876543210", false},
		{"+91abc", false},
		{"+1234567", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPhone(tt.phone), tt.phone)
	}
}

func TestSendAndVerify(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	sess, err := s.SendCode(ctx, "+919876543210")
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, err = s.VerifyCode(ctx, "+919876543210", "0000")
	assert.ErrorIs(t, err, common.ErrInvalidCode)

	sess, err = s.VerifyCode(ctx, "+919876543210", "4321")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "+919876543210", sess.User.Phone)

	id, err := s.Authenticate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, id)
}

func TestVerifyWithoutChallenge(t *testing.T) {
	s := newService(t, nil)

	_, err := s.VerifyCode(context.Background(), "+919876543210", "4321")
	assert.ErrorIs(t, err, common.ErrInvalidCode)
}

func TestSendCodeRejectsBadPhone(t *testing.T) {
	s := newService(t, nil)

	_, err := s.SendCode(context.Background(), "12345")
	assert.ErrorIs(t, err, common.ErrInvalidPhone)
}

func TestSendCodeIssuesTokenWhenConfigured(t *testing.T) {
	s := newService(t, func(c *config.Config) { c.IssueTokenOnSend = true })

	sess, err := s.SendCode(context.Background(), "+919876543210")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.Token)
}

func TestSameUserAcrossSignIns(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	var ids []string
	for i := 0; i < 2; i++ {
		_, err := s.SendCode(ctx, "+919876543210")
		require.NoError(t, err)
		sess, err := s.VerifyCode(ctx, "+919876543210", "4321")
		require.NoError(t, err)
		ids = append(ids, sess.User.ID)
	}
	assert.Equal(t, ids[0], ids[1])
}

func TestFamilyMembersExcludesCaller(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	var me string
	for _, phone := range []string{"+911111111111", "+912222222222", "+913333333333"} {
		_, err := s.SendCode(ctx, phone)
		require.NoError(t, err)
		sess, err := s.VerifyCode(ctx, phone, "4321")
		require.NoError(t, err)
		if me == "" {
			me = sess.User.ID
		}
	}

	members, err := s.FamilyMembers(ctx, me)
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.NotEqual(t, me, m.ID)
	}
}
