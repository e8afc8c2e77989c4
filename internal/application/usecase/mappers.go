package usecase

import (
	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
)

func toApplicationResponse(app model.LoanApplication) dto.LoanApplicationResponse {
	return dto.LoanApplicationResponse{
		ID:                app.ID(),
		ApplicantID:       app.ApplicantID(),
		RequestedAmount:   app.RequestedAmount(),
		Currency:          app.Currency(),
		TenureMonths:      app.TenureMonths(),
		MonthlyIncome:     app.MonthlyIncome(),
		Documents:         app.Documents(),
		Status:            app.Status().String(),
		AnnualRatePercent: app.AnnualRatePercent(),
		AdminNote:         app.AdminNote(),
		CreatedAt:         app.CreatedAt(),
		UpdatedAt:         app.UpdatedAt(),
	}
}

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:                 loan.ID(),
		ApplicationID:      loan.ApplicationID(),
		BorrowerID:         loan.BorrowerID(),
		Principal:          loan.Principal(),
		Currency:           loan.Currency(),
		AnnualRatePercent:  loan.AnnualRatePercent(),
		TenureMonths:       loan.TenureMonths(),
		StartDate:          loan.StartDate().Format("2006-01-02"),
		EMI:                loan.EMI(),
		OutstandingBalance: loan.OutstandingBalance(),
		TotalPaid:          loan.TotalPaid(),
		Status:             loan.Status().String(),
		CreatedAt:          loan.CreatedAt(),
		UpdatedAt:          loan.UpdatedAt(),
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID(),
		LoanID:        p.LoanID(),
		PayerID:       p.PayerID(),
		Amount:        p.Amount().Amount(),
		Currency:      p.Amount().Currency().Code(),
		PaymentMethod: p.PaymentMethod(),
		Status:        p.Status().String(),
		TransactionID: p.TransactionID(),
		Remarks:       p.Remarks(),
		CreatedAt:     p.CreatedAt(),
	}
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
	}
}

func toScheduleResponse(loanID string, sched *model.Schedule) dto.ScheduleResponse {
	entries := make([]dto.ScheduleEntryResponse, 0, len(sched.Entries))
	for _, e := range sched.Entries {
		entries = append(entries, dto.ScheduleEntryResponse{
			Month:     e.Month,
			Date:      e.DueDate.Format("2006-01-02"),
			Principal: e.Principal,
			Interest:  e.Interest,
			Total:     e.Total,
			Balance:   e.Balance,
		})
	}
	return dto.ScheduleResponse{
		LoanID:        loanID,
		EMI:           sched.EMI,
		TotalInterest: sched.TotalInterest,
		TotalPayable:  sched.TotalPayable,
		Schedule:      entries,
	}
}
