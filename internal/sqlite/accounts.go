package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelfware-labs/partsbin/pkg/types"
)

// verificationTTL is how long an issued verification token stays valid.
const verificationTTL = 24 * time.Hour

func accountFromRow(m map[string]any) types.Account {
	return types.Account{
		ID:                  asInt64(m["id"]),
		Email:               asString(m["email"]),
		PasswordHash:        asString(m["passwordHash"]),
		Role:                asString(m["role"]),
		SignInCount:         asInt64(m["signInCount"]),
		LastSignInAt:        asTimePtr(m["lastSignInAt"]),
		LastSignInIP:        asString(m["lastSignInIp"]),
		Verified:            asBool(m["verified"]),
		VerificationToken:   asString(m["verificationToken"]),
		VerificationExpires: asTimePtr(m["verificationExpires"]),
		CreatedAt:           asTime(m["createdAt"]),
		UpdatedAt:           asTime(m["updatedAt"]),
	}
}

func accountToRecord(a types.Account) *Record {
	rec := NewRecord().
		Set("id", a.ID).
		Set("email", a.Email).
		Set("passwordHash", a.PasswordHash).
		Set("role", a.Role).
		Set("signInCount", a.SignInCount).
		Set("lastSignInAt", timeOrNil(a.LastSignInAt)).
		Set("lastSignInIp", a.LastSignInIP).
		Set("verified", boolToInt(a.Verified)).
		Set("verificationToken", a.VerificationToken).
		Set("verificationExpires", timeOrNil(a.VerificationExpires)).
		Set("createdAt", formatTime(a.CreatedAt)).
		Set("updatedAt", formatTime(a.UpdatedAt))
	return rec
}

// AccountRepo stores user accounts. Passwords are stored as bcrypt hashes
// only; Authenticate preserves the plain match/no-match contract.
type AccountRepo struct {
	*Repository[types.Account]
}

// NewAccountRepo returns the accounts repository.
func NewAccountRepo(eng *Engine) *AccountRepo {
	return &AccountRepo{NewRepository(eng, EntityMeta[types.Account]{
		Table:    types.TableAccounts,
		FromRow:  accountFromRow,
		ToRecord: accountToRecord,
	})}
}

// CreateAccount hashes the password, stamps timestamps, and issues a
// verification token for unverified accounts before inserting.
func (r *AccountRepo) CreateAccount(a types.Account, password string) (types.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.Account{}, fmt.Errorf("hashing password: %w", err)
	}
	a.PasswordHash = string(hash)

	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.Role == "" {
		a.Role = types.RoleStaff
	}
	if !a.Verified && a.VerificationToken == "" {
		a.VerificationToken = uuid.NewString()
		expires := now.Add(verificationTTL)
		a.VerificationExpires = &expires
	}

	taken, err := r.EmailTaken(a.Email, 0)
	if err != nil {
		return types.Account{}, err
	}
	if taken {
		return types.Account{}, types.ErrEmailTaken
	}
	return r.Create(a)
}

// GetByEmail looks up an account by email, case-insensitively.
func (r *AccountRepo) GetByEmail(email string) (types.Account, bool, error) {
	return r.queryOne(
		"SELECT * FROM accounts WHERE email = ? COLLATE NOCASE", email)
}

// EmailTaken reports whether another account (any id other than
// excludeID) already uses the email.
func (r *AccountRepo) EmailTaken(email string, excludeID int64) (bool, error) {
	row, ok, err := r.eng.QueryOne(
		"SELECT id FROM accounts WHERE email = ? COLLATE NOCASE AND id != ?",
		email, excludeID)
	if err != nil {
		return false, err
	}
	_ = row
	return ok, nil
}

// RecordSignIn bumps the sign-in counter and stamps time and IP as one
// atomic statement.
func (r *AccountRepo) RecordSignIn(id int64, ip string) error {
	now := formatTime(time.Now())
	_, err := r.eng.Execute(`UPDATE accounts
		SET sign_in_count = sign_in_count + 1, last_sign_in_at = ?, last_sign_in_ip = ?, updated_at = ?
		WHERE id = ?`, now, ip, now, id)
	return err
}

// UpdateRole sets the account role.
func (r *AccountRepo) UpdateRole(id int64, role string) (types.Account, bool, error) {
	return r.Update(id, NewRecord().
		Set("role", role).
		Set("updatedAt", formatTime(time.Now())))
}

// UpdateEmail changes the account email after checking it is not taken by
// a different account.
func (r *AccountRepo) UpdateEmail(id int64, email string) (types.Account, bool, error) {
	taken, err := r.EmailTaken(email, id)
	if err != nil {
		return types.Account{}, false, err
	}
	if taken {
		return types.Account{}, false, types.ErrEmailTaken
	}
	return r.Update(id, NewRecord().
		Set("email", email).
		Set("updatedAt", formatTime(time.Now())))
}

// SetPassword replaces the stored hash with one for the new password.
func (r *AccountRepo) SetPassword(id int64, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}
	_, ok, err := r.Update(id, NewRecord().
		Set("passwordHash", string(hash)).
		Set("updatedAt", formatTime(time.Now())))
	return ok, err
}

// Authenticate checks the credentials and returns the account on a match,
// ErrInvalidCredentials otherwise.
func (r *AccountRepo) Authenticate(email, password string) (types.Account, error) {
	a, ok, err := r.GetByEmail(email)
	if err != nil {
		return types.Account{}, err
	}
	if !ok {
		return types.Account{}, types.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return types.Account{}, types.ErrInvalidCredentials
	}
	return a, nil
}

// Verify consumes a verification token, marking the account verified when
// the token matches and has not expired.
func (r *AccountRepo) Verify(id int64, token string) error {
	a, ok, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrNotFound
	}
	if a.VerificationToken == "" || a.VerificationToken != token {
		return types.ErrTokenMismatch
	}
	if a.VerificationExpires != nil && time.Now().After(*a.VerificationExpires) {
		return types.ErrTokenExpired
	}
	_, _, err = r.Update(id, NewRecord().
		Set("verified", 1).
		Set("verificationToken", "").
		Set("verificationExpires", nil).
		Set("updatedAt", formatTime(time.Now())))
	return err
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
