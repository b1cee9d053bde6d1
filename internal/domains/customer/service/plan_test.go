package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cashflowModel "hotel/internal/domains/cashflow/model"
	"hotel/internal/domains/customer/model"
	"hotel/internal/domains/customer/model/dto"
)

func TestAdjustmentPlan(t *testing.T) {
	tests := []struct {
		name            string
		req             dto.AdjustBalanceRequest
		wantDelta       int64
		wantFlowType    string
		wantCategory    string
		wantMethod      string
		wantDescription string
		wantErr         bool
	}{
		{
			name:            "payment raises the balance and books debt collection",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypePayment, Amount: 50000, PaymentMethod: cashflowModel.PaymentMethodBank},
			wantDelta:       50000,
			wantFlowType:    cashflowModel.FlowTypeIn,
			wantCategory:    cashflowModel.CategoryDebtPaid,
			wantMethod:      cashflowModel.PaymentMethodBank,
			wantDescription: "Thu nợ",
		},
		{
			name:            "payment defaults to cash when no method is given",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypePayment, Amount: 50000},
			wantDelta:       50000,
			wantFlowType:    cashflowModel.FlowTypeIn,
			wantCategory:    cashflowModel.CategoryDebtPaid,
			wantMethod:      cashflowModel.PaymentMethodCash,
			wantDescription: "Thu nợ",
		},
		{
			name:    "payment must be positive",
			req:     dto.AdjustBalanceRequest{Type: model.TxTypePayment, Amount: -1},
			wantErr: true,
		},
		{
			name:            "charge lowers the balance and is forced onto credit",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypeCharge, Amount: 30000, PaymentMethod: cashflowModel.PaymentMethodCash},
			wantDelta:       -30000,
			wantFlowType:    cashflowModel.FlowTypeIn,
			wantCategory:    cashflowModel.CategoryExtraFee,
			wantMethod:      cashflowModel.PaymentMethodCredit,
			wantDescription: "Phụ phí",
		},
		{
			name:    "charge must be positive",
			req:     dto.AdjustBalanceRequest{Type: model.TxTypeCharge, Amount: 0},
			wantErr: true,
		},
		{
			name:            "refund lowers the balance and pays money out",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypeRefund, Amount: 20000, PaymentMethod: cashflowModel.PaymentMethodCash},
			wantDelta:       -20000,
			wantFlowType:    cashflowModel.FlowTypeOut,
			wantCategory:    cashflowModel.CategoryRefund,
			wantMethod:      cashflowModel.PaymentMethodCash,
			wantDescription: "Hoàn tiền",
		},
		{
			name:    "refund must be positive",
			req:     dto.AdjustBalanceRequest{Type: model.TxTypeRefund, Amount: -20000},
			wantErr: true,
		},
		{
			name:            "positive adjustment flows in on credit",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypeAdjustment, Amount: 10000},
			wantDelta:       10000,
			wantFlowType:    cashflowModel.FlowTypeIn,
			wantCategory:    cashflowModel.CategoryAdjustment,
			wantMethod:      cashflowModel.PaymentMethodCredit,
			wantDescription: "Điều chỉnh",
		},
		{
			name:            "negative adjustment flows out on credit",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypeAdjustment, Amount: -10000},
			wantDelta:       -10000,
			wantFlowType:    cashflowModel.FlowTypeOut,
			wantCategory:    cashflowModel.CategoryAdjustment,
			wantMethod:      cashflowModel.PaymentMethodCredit,
			wantDescription: "Điều chỉnh",
		},
		{
			name:    "zero adjustment is rejected",
			req:     dto.AdjustBalanceRequest{Type: model.TxTypeAdjustment, Amount: 0},
			wantErr: true,
		},
		{
			name:    "unknown type is rejected",
			req:     dto.AdjustBalanceRequest{Type: "bonus", Amount: 10000},
			wantErr: true,
		},
		{
			name:            "staff description overrides the default",
			req:             dto.AdjustBalanceRequest{Type: model.TxTypePayment, Amount: 50000, Description: "Trả góp lần 2"},
			wantDelta:       50000,
			wantFlowType:    cashflowModel.FlowTypeIn,
			wantCategory:    cashflowModel.CategoryDebtPaid,
			wantMethod:      cashflowModel.PaymentMethodCash,
			wantDescription: "Trả góp lần 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, flowType, category, method, description, err := adjustmentPlan(tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, tt.wantFlowType, flowType)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantMethod, method)
			assert.Equal(t, tt.wantDescription, description)
		})
	}
}
