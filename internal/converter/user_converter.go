package converter

import (
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
)

// UserToResponse converts a User and its profile to the UserResponse DTO,
// including the capability set derived from the profile role.
func UserToResponse(user *entity.User, profile *entity.UserProfile) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if profile != nil {
		response.Role = string(profile.Role)
		response.RoleDisplay = profile.Role.Display()
		response.Department = profile.Department
		response.ContactNumber = profile.ContactNumber
		response.Permissions = entity.CapabilitiesFor(profile.Role, user.IsSuperuser)
	}

	return response
}
