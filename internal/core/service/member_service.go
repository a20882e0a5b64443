package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
	"github.com/medicaps/clubs-portal/internal/pkg/ids"
)

const unknownClubName = "Unknown Club"

type memberService struct {
	store  ports.Store
	sealer CredentialSealer
	log    zerolog.Logger
	now    func() time.Time
	intn   func(int) int
}

// NewMemberService returns the administrator's member management.
func NewMemberService(store ports.Store, sealer CredentialSealer, log zerolog.Logger) ports.MemberService {
	if sealer == nil {
		sealer = PlainSealer{}
	}
	return &memberService{store: store, sealer: sealer, log: log, now: time.Now}
}

func trimMember(in ports.MemberInput) ports.MemberInput {
	return ports.MemberInput{
		Username: strings.TrimSpace(in.Username),
		Password: strings.TrimSpace(in.Password),
		ClubID:   strings.TrimSpace(in.ClubID),
	}
}

// List returns every user with the member role.
func (s *memberService) List(ctx context.Context) ([]ports.MemberView, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]ports.MemberView, 0)
	for _, u := range users {
		clubID, ok := u.ClubID()
		if !ok {
			continue
		}
		name := unknownClubName
		if c, found := domain.FindClub(clubs, clubID); found {
			name = c.Name
		}
		out = append(out, ports.MemberView{User: u, ClubName: name})
	}
	return out, nil
}

// Add creates a member. The username must not exist yet under any role
// (case-insensitive) and the club must exist.
func (s *memberService) Add(ctx context.Context, in ports.MemberInput) (*domain.User, error) {
	in = trimMember(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	for _, u := range users {
		if u.SameUsername(in.Username) {
			return nil, domain.ErrDuplicateUsername
		}
	}

	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	if _, ok := domain.FindClub(clubs, in.ClubID); !ok {
		return nil, domain.ErrUnknownClub
	}

	sealed, err := s.sealer.Seal(in.Password)
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	member := domain.NewMember(ids.New("member", s.now()), in.Username, sealed, in.ClubID)

	if err := s.store.SaveUsers(ctx, append(users, member)); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.log.Info().Str("user_id", member.ID).Str("club_id", in.ClubID).Msg("member added")
	return &member, nil
}

// Update replaces a member's username, password and club. Username
// uniqueness is only enforced when members are added.
func (s *memberService) Update(ctx context.Context, id string, in ports.MemberInput) (*domain.User, error) {
	in = trimMember(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	idx := memberIndex(users, id)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}

	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	if _, ok := domain.FindClub(clubs, in.ClubID); !ok {
		return nil, domain.ErrUnknownClub
	}

	current := users[idx]
	password := current.Password
	// The edit form is pre-filled with the stored value; only a changed
	// password is sealed again.
	if in.Password != current.Password {
		if password, err = s.sealer.Seal(in.Password); err != nil {
			return nil, fmt.Errorf("update member: %w", err)
		}
	}

	updated := make([]domain.User, len(users))
	copy(updated, users)
	updated[idx] = domain.NewMember(current.ID, in.Username, password, in.ClubID)

	if err := s.store.SaveUsers(ctx, updated); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	s.log.Info().Str("user_id", id).Str("club_id", in.ClubID).Msg("member updated")
	member := updated[idx]
	return &member, nil
}

// Delete removes a member. Admins and guests cannot be removed this way.
func (s *memberService) Delete(ctx context.Context, id string) error {
	users, err := s.store.Users(ctx)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	idx := memberIndex(users, id)
	if idx < 0 {
		return domain.ErrUserNotFound
	}

	kept := make([]domain.User, 0, len(users)-1)
	kept = append(kept, users[:idx]...)
	kept = append(kept, users[idx+1:]...)

	if err := s.store.SaveUsers(ctx, kept); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("member deleted")
	return nil
}

// GenerateCredentials proposes a username and password for a new member of clubID.
// Nothing is stored.
func (s *memberService) GenerateCredentials(ctx context.Context, clubID string) (*ports.Credentials, error) {
	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return nil, &domain.ValidationError{Fields: []string{"clubID"}}
	}

	clubs, err := s.store.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate credentials: %w", err)
	}
	club, ok := domain.FindClub(clubs, clubID)
	if !ok {
		return nil, domain.ErrUnknownClub
	}

	return &ports.Credentials{
		Username: generateUsername(club, s.now()),
		Password: generatePassword(s.intn),
	}, nil
}

func memberIndex(users []domain.User, id string) int {
	for i, u := range users {
		if u.ID == id && u.Role == domain.RoleMember {
			return i
		}
	}
	return -1
}
