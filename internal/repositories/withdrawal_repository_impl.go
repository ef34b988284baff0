package repositories

import (
	"context"

	"usercenter/internal/models"

	"gorm.io/gorm"
)

type withdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &withdrawalRepository{
		db: db,
	}
}

func (r *withdrawalRepository) ExistsPending(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WithdrawalRequest{}).
		Where("user_id = ? AND status = ?", userID, models.WithdrawalPending).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, translateError("check pending withdrawal", err)
	}
	return count > 0, nil
}

func (r *withdrawalRepository) Insert(ctx context.Context, request *models.WithdrawalRequest) error {
	if request.Status == "" {
		request.Status = models.WithdrawalPending
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return translateError("insert withdrawal", err)
	}
	return nil
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.WithdrawalRequest, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.WithdrawalRequest{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError("count withdrawals", err)
	}

	requests := make([]models.WithdrawalRequest, 0, limit)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, 0, translateError("list withdrawals", err)
	}
	return requests, total, nil
}
