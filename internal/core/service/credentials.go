package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medicaps/clubs-portal/internal/core/domain"
)

// CredentialSealer turns a password into its stored form and checks login
// attempts against that form.
type CredentialSealer interface {
	Seal(password string) (string, error)
	Match(stored, attempt string) bool
}

// PlainSealer stores passwords verbatim and compares them exactly (case-sensitive).
// This is the portal's default and keeps stored data readable by the admin screen.
type PlainSealer struct{}

func (PlainSealer) Seal(password string) (string, error) { return password, nil }

func (PlainSealer) Match(stored, attempt string) bool { return stored == attempt }

// BcryptSealer is the hardened mode, enabled with HASH_PASSWORDS=true.
type BcryptSealer struct {
	Cost int // 0 means bcrypt.DefaultCost
}

func (s BcryptSealer) Seal(password string) (string, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("seal password: %w", err)
	}
	return string(hash), nil
}

func (BcryptSealer) Match(stored, attempt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(attempt)) == nil
}

const (
	credentialAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	generatedPasswordChars = 8
)

// generateUsername builds "<club name without whitespace, lower-cased>_<last 4 digits of the ms clock>".
func generateUsername(club domain.Club, now time.Time) string {
	prefix := strings.Join(strings.Fields(strings.ToLower(club.Name)), "")
	return fmt.Sprintf("%s_%04d", prefix, now.UnixMilli()%10000)
}

// generatePassword draws from a non-cryptographic source. These are onboarding
// defaults the administrator is expected to hand out or overwrite.
func generatePassword(intn func(int) int) string {
	if intn == nil {
		intn = rand.Intn
	}
	b := make([]byte, generatedPasswordChars)
	for i := range b {
		b[i] = credentialAlphabet[intn(len(credentialAlphabet))]
	}
	return string(b)
}
