package gormdb

import (
	"context"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addressEventRepository struct {
	db *gorm.DB
}

func NewAddressEventRepository(db *gorm.DB) repository.AddressEventRepository {
	return &addressEventRepository{db: db}
}

// Record inserts the event, skipping redeliveries of a message that is already journaled.
func (repo *addressEventRepository) Record(ctx context.Context, event *entity.AddressEvent) (bool, error) {
	eventM := fromAddressEventDomain(event)
	eventM.ID = 0

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(eventM)
	if err := result.Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to record address event")
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	event.ID = eventM.ID

	return true, nil
}

func (repo *addressEventRepository) ListByAddress(ctx context.Context, addressID int64) ([]*entity.AddressEvent, error) {
	var eventModels []*model.AddressEventModel

	err := repo.db.WithContext(ctx).
		Where("address_id = ?", addressID).
		Order("published_at ASC, id ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list address events")
	}

	events := make([]*entity.AddressEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toAddressEventDomain(eventM))
	}

	return events, nil
}

func toAddressEventDomain(data *model.AddressEventModel) *entity.AddressEvent {
	if data == nil {
		return nil
	}

	return &entity.AddressEvent{
		ID:          data.ID,
		MessageID:   data.MessageID,
		EventType:   data.EventType,
		AddressID:   data.AddressID,
		RequestID:   data.RequestID,
		Street:      data.Street,
		City:        data.City,
		State:       data.State,
		Country:     data.Country,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		PublishedAt: data.PublishedAt.UTC(),
		ReceivedAt:  data.ReceivedAt.UTC(),
	}
}

func fromAddressEventDomain(data *entity.AddressEvent) *model.AddressEventModel {
	if data == nil {
		return nil
	}

	return &model.AddressEventModel{
		ID:          data.ID,
		MessageID:   data.MessageID,
		EventType:   data.EventType,
		AddressID:   data.AddressID,
		RequestID:   data.RequestID,
		Street:      data.Street,
		City:        data.City,
		State:       data.State,
		Country:     data.Country,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		PublishedAt: data.PublishedAt,
		ReceivedAt:  data.ReceivedAt,
	}
}
