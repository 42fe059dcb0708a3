package shift

import (
	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

func toShiftResponse(s *entity.Shift) *dto.ShiftResponse {
	if s == nil {
		return nil
	}
	out := &dto.ShiftResponse{
		ID:              s.ID,
		CompanyID:       s.CompanyID,
		LocationID:      s.LocationID,
		UserID:          s.UserID,
		StartAt:         s.StartAt,
		EndAt:           s.EndAt,
		Status:          s.Status,
		CloseDeadlineAt: s.CloseDeadlineAt,
		OpenData: dto.ShiftOpenDataResponse{
			Checklist: nonNil(s.OpenData.Checklist),
			PhotoURL:  s.OpenData.PhotoURL,
		},
		CashLogs: make([]dto.CashLogResponse, 0, len(s.CashLogs)),
	}
	if s.CloseData != nil {
		out.CloseData = &dto.ShiftCloseDataResponse{
			Checklist:      nonNil(s.CloseData.Checklist),
			PhotoURL:       s.CloseData.PhotoURL,
			WriteOffReason: s.CloseData.WriteOffReason,
			Notes:          s.CloseData.Notes,
		}
	}
	for _, l := range s.CashLogs {
		out.CashLogs = append(out.CashLogs, dto.CashLogResponse{Type: l.Type, Amount: l.Amount, CreatedAt: l.CreatedAt})
	}
	return out
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
