package elevenlabs

import "context"

// WorkspaceService wraps the /v1/workspace administration endpoints.
type WorkspaceService struct {
	transport *Transport
}

// WorkspaceMemberUpdate carries the mutable attributes of a member. Nil
// fields are left unchanged by the service.
type WorkspaceMemberUpdate struct {
	Email         string  `json:"email"`
	IsLocked      *bool   `json:"is_locked,omitempty"`
	WorkspaceRole *string `json:"workspace_role,omitempty"`
}

// InviteUser sends a workspace invitation to the given address.
func (s *WorkspaceService) InviteUser(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	var out statusResponse
	return s.transport.Post(ctx, "/v1/workspace/invites/add", body, &out)
}

// DeleteInvite revokes a pending invitation. The endpoint requires delete
// semantics with a JSON payload.
func (s *WorkspaceService) DeleteInvite(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	var out statusResponse
	return s.transport.Delete(ctx, "/v1/workspace/invites", body, &out)
}

// UpdateMember changes a member's lock state or role.
func (s *WorkspaceService) UpdateMember(ctx context.Context, update *WorkspaceMemberUpdate) error {
	var out statusResponse
	return s.transport.Post(ctx, "/v1/workspace/members", update, &out)
}
