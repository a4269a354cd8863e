package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultResetCodeTTL = 5 * time.Minute
	resetCodePrefix     = "email:code:reset"

	pendingSuffix   = "pending"
	confirmedSuffix = "confirmed"
)

var (
	ErrCodeNotFound      = errors.New("code not found")
	ErrCodePendingFailed = errors.New("code pending failed")
	ErrCodeConfirmFailed = errors.New("code confirm failed")
	ErrCodeDeleteFailed  = errors.New("code delete failed")
)

// ResetCodeRepository stores password-reset codes in two phases: a pending
// key written before the mail goes out, promoted to confirmed only after the
// send succeeds, so codes from failed sends never validate.
type ResetCodeRepository struct{}

func resetKey(phase, email string) string {
	return fmt.Sprintf("%s:%s:%s", resetCodePrefix, phase, email)
}

func (e *ResetCodeRepository) SetPending(email, code string) error {
	if err := Client.Set(context.Background(), resetKey(pendingSuffix, email), code, DefaultResetCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// Confirm promotes the pending key atomically: read, copy with fresh TTL,
// delete the source.
func (e *ResetCodeRepository) Confirm(email string) error {
	srcKey := resetKey(pendingSuffix, email)
	dstKey := resetKey(confirmedSuffix, email)

	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultResetCodeTTL / time.Millisecond)
	res := Client.Eval(context.Background(), script, []string{srcKey, dstKey}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmFailed
	}
	ok, _ := res.Int()
	if ok != 1 {
		return ErrCodeConfirmFailed
	}
	return nil
}

func (e *ResetCodeRepository) DeletePending(email string) error {
	if err := Client.Del(context.Background(), resetKey(pendingSuffix, email)).Err(); err != nil {
		return ErrCodeDeleteFailed
	}
	return nil
}

func (e *ResetCodeRepository) GetConfirmed(email string) (string, error) {
	val, err := Client.Get(context.Background(), resetKey(confirmedSuffix, email)).Result()
	if err != nil {
		return "", ErrCodeNotFound
	}
	return val, nil
}

// DeleteConfirmed burns a code after a successful reset.
func (e *ResetCodeRepository) DeleteConfirmed(email string) error {
	if err := Client.Del(context.Background(), resetKey(confirmedSuffix, email)).Err(); err != nil {
		return ErrCodeDeleteFailed
	}
	return nil
}
