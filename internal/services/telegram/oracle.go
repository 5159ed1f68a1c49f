package telegram

import (
	"context"
	"errors"
	"strings"

	"reelgate/internal/gate"
)

// MembershipOracle answers sponsor subscription checks through getChatMember.
type MembershipOracle struct {
	client *Client
}

// NewMembershipOracle wraps the client as a membership oracle.
func NewMembershipOracle(client *Client) *MembershipOracle {
	return &MembershipOracle{client: client}
}

// Member reports the user's standing in the channel. Users Telegram has no
// record of map to UnknownUser rather than an error; anything else that stops
// a definite answer is returned as an error for the caller to treat as an
// oracle outage.
func (o *MembershipOracle) Member(ctx context.Context, channel string, userID int64) (gate.Membership, error) {
	member, err := o.client.GetChatMember(ctx, channel, userID)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && isUnknownUser(apiErr) {
			return gate.UnknownUser, nil
		}
		return gate.NotMember, err
	}
	switch member.Status {
	case "left", "kicked":
		return gate.NotMember, nil
	default:
		// creator, administrator, member, restricted.
		return gate.Member, nil
	}
}

func isUnknownUser(apiErr *APIError) bool {
	if apiErr.Code != 400 {
		return false
	}
	desc := strings.ToLower(apiErr.Description)
	return strings.Contains(desc, "user not found") ||
		strings.Contains(desc, "user_id_invalid") ||
		strings.Contains(desc, "participant_id_invalid")
}
