package converter

import (
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
)

// TransitInfoToResponse converts a TransitInfo entity to its DTO
func TransitInfoToResponse(info *entity.TransitInfo) *dto.TransitInfoResponse {
	if info == nil {
		return nil
	}

	response := &dto.TransitInfoResponse{
		ID:                info.ID,
		ReferralID:        info.ReferralID,
		WatcherName:       info.WatcherName,
		WatcherAge:        info.WatcherAge,
		RelationToPatient: info.RelationToPatient,
		ContactNumber:     info.ContactNumber,
		EscortNurse:       info.EscortNurse,
		Driver:            info.Driver,
		ReferringMD:       info.ReferringMD,
		ReferringFacility: info.ReferringFacility,
		LatestVS:          info.LatestVS,
		GCS:               info.GCS,
		TimeAmbulanceLeft: info.TimeAmbulanceLeft,
		CreatedAt:         info.CreatedAt,
	}

	if info.Referral != nil {
		response.ReferralCode = info.Referral.ReferralID
	}

	return response
}

// TransitInfosToResponses converts a slice of TransitInfo entities to DTOs
func TransitInfosToResponses(infos []entity.TransitInfo) []dto.TransitInfoResponse {
	responses := make([]dto.TransitInfoResponse, len(infos))
	for i, info := range infos {
		responses[i] = *TransitInfoToResponse(&info)
	}
	return responses
}

// TransitInfoFromPayload maps a request payload onto a TransitInfo entity.
func TransitInfoFromPayload(referralID uint, payload *dto.TransitInfoPayload) *entity.TransitInfo {
	if payload == nil {
		return nil
	}
	return &entity.TransitInfo{
		ReferralID:        referralID,
		WatcherName:       payload.WatcherName,
		WatcherAge:        payload.WatcherAge,
		RelationToPatient: payload.RelationToPatient,
		ContactNumber:     payload.ContactNumber,
		EscortNurse:       payload.EscortNurse,
		Driver:            payload.Driver,
		ReferringMD:       payload.ReferringMD,
		ReferringFacility: payload.ReferringFacility,
		LatestVS:          payload.LatestVS,
		GCS:               payload.GCS,
		TimeAmbulanceLeft: payload.TimeAmbulanceLeft,
	}
}
