package handler

import (
	"github.com/medicaps/clubs-portal/internal/core/domain"
	"github.com/medicaps/clubs-portal/internal/core/ports"
)

// toUserResponse never carries the password.
func toUserResponse(u domain.User) userResponse {
	resp := userResponse{ID: u.ID, Username: u.Username, Role: string(u.Role)}
	if clubID, ok := u.ClubID(); ok {
		resp.ClubID = clubID
	}
	return resp
}

func toClubResponse(c domain.Club) clubResponse {
	return clubResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func toClubSummaries(in []ports.ClubSummary) []clubSummaryResponse {
	out := make([]clubSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, clubSummaryResponse{
			clubResponse: toClubResponse(s.Club),
			MemberCount:  s.MemberCount,
			EventCount:   s.EventCount,
		})
	}
	return out
}

func toCascadeResponse(r *ports.CascadeResult) cascadeResponse {
	return cascadeResponse{
		Club:           toClubResponse(r.Club),
		EventsRenamed:  r.EventsRenamed,
		MembersRemoved: r.MembersRemoved,
		EventsRemoved:  r.EventsRemoved,
	}
}

func toMemberResponse(u domain.User, clubName string) memberResponse {
	clubID, _ := u.ClubID()
	return memberResponse{ID: u.ID, Username: u.Username, Password: u.Password, ClubID: clubID, ClubName: clubName}
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		ClubID:      e.ClubID,
		ClubName:    e.ClubName,
		Date:        e.Date,
		Time:        e.Time,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

func toEventResponses(in []domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(in))
	for _, e := range in {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toGuestFeedResponse(f *ports.GuestFeed) guestFeedResponse {
	resp := guestFeedResponse{
		Clubs:         make([]clubResponse, 0, len(f.Clubs)),
		Events:        make([]feedEventResponse, 0, len(f.Events)),
		Notifications: toEventResponses(f.Notifications),
	}
	for _, c := range f.Clubs {
		resp.Clubs = append(resp.Clubs, toClubResponse(c))
	}
	for _, e := range f.Events {
		resp.Events = append(resp.Events, feedEventResponse{eventResponse: toEventResponse(e.Event), IsNew: e.IsNew})
	}
	return resp
}
