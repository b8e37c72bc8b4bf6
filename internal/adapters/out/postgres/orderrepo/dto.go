// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored by their wire labels, claim slots as embedded columns,
// and version carries the optimistic concurrency token.
type OrderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID   string    `gorm:"type:text;uniqueIndex"`
	SalesID uuid.UUID `gorm:"type:uuid;index"`

	Status    string `gorm:"type:text;index"`
	SubStatus string `gorm:"type:text"`
	BlockType string `gorm:"type:text"`

	IsUrgent         bool   `gorm:"index"`
	UrgentNote       string `gorm:"type:text"`
	CancelReason     string `gorm:"type:text"`
	PurchasingReason string `gorm:"type:text"`
	TrackingNo       string `gorm:"type:text"`

	TotalPrice    int64
	PaidAmount    int64
	PaymentMethod string `gorm:"type:text"`

	SLABufferDays int `gorm:"column:sla_buffer_days"`
	ReworkCount   int

	Graphic    ClaimSlotDTO `gorm:"embedded;embeddedPrefix:graphic_"`
	Stock      ClaimSlotDTO `gorm:"embedded;embeddedPrefix:stock_"`
	Production ClaimSlotDTO `gorm:"embedded;embeddedPrefix:production_"`
	QC         ClaimSlotDTO `gorm:"embedded;embeddedPrefix:qc_"`

	DueDate   time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
	Version   int64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ClaimSlotDTO represents one embedded department claim slot.
type ClaimSlotDTO struct {
	ClaimantID *uuid.UUID `gorm:"type:uuid"`
	Finished   bool
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	snap := aggregate.Snapshot()

	return OrderDTO{
		ID:               snap.ID.Bytes(),
		JobID:            snap.JobID,
		SalesID:          snap.SalesID.Bytes(),
		Status:           snap.Status.String(),
		SubStatus:        string(snap.SubStatus),
		BlockType:        string(snap.BlockType),
		IsUrgent:         snap.IsUrgent,
		UrgentNote:       snap.UrgentNote,
		CancelReason:     snap.CancelReason,
		PurchasingReason: snap.PurchasingReason,
		TrackingNo:       snap.TrackingNo,
		TotalPrice:       snap.TotalPrice,
		PaidAmount:       snap.PaidAmount,
		PaymentMethod:    snap.PaymentMethod.String(),
		SLABufferDays:    snap.SLABufferDays,
		ReworkCount:      snap.ReworkCount,
		Graphic:          slotFromDomain(snap.Claims[order.DepartmentGraphic]),
		Stock:            slotFromDomain(snap.Claims[order.DepartmentStock]),
		Production:       slotFromDomain(snap.Claims[order.DepartmentProduction]),
		QC:               slotFromDomain(snap.Claims[order.DepartmentQC]),
		DueDate:          snap.DueDate,
		CreatedAt:        snap.CreatedAt,
		UpdatedAt:        snap.UpdatedAt,
		Version:          snap.Version,
	}
}

func slotFromDomain(rec order.ClaimRecord) ClaimSlotDTO {
	var claimantID *uuid.UUID
	if rec.Claimant != nil {
		raw := rec.Claimant.Bytes()
		claimantID = &raw
	}
	return ClaimSlotDTO{ClaimantID: claimantID, Finished: rec.Finished}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including claims using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	salesID, err := kernel.UUIDFromBytes(dto.SalesID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	claims := make(map[order.Department]order.ClaimRecord, 4)
	for department, slot := range map[order.Department]ClaimSlotDTO{
		order.DepartmentGraphic:    dto.Graphic,
		order.DepartmentStock:      dto.Stock,
		order.DepartmentProduction: dto.Production,
		order.DepartmentQC:         dto.QC,
	} {
		rec, slotErr := slotToDomain(slot)
		if slotErr != nil {
			return nil, slotErr
		}
		claims[department] = rec
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		JobID:            dto.JobID,
		SalesID:          salesID,
		Status:           status,
		SubStatus:        order.SubStatus(dto.SubStatus),
		BlockType:        order.BlockType(dto.BlockType),
		IsUrgent:         dto.IsUrgent,
		UrgentNote:       dto.UrgentNote,
		CancelReason:     dto.CancelReason,
		PurchasingReason: dto.PurchasingReason,
		TrackingNo:       dto.TrackingNo,
		TotalPrice:       dto.TotalPrice,
		PaidAmount:       dto.PaidAmount,
		PaymentMethod:    order.PaymentMethod(dto.PaymentMethod),
		SLABufferDays:    dto.SLABufferDays,
		ReworkCount:      dto.ReworkCount,
		Claims:           claims,
		DueDate:          dto.DueDate,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
		Version:          dto.Version,
	})
}

func slotToDomain(dto ClaimSlotDTO) (order.ClaimRecord, error) {
	rec := order.ClaimRecord{Finished: dto.Finished}
	if dto.ClaimantID != nil {
		claimant, err := kernel.UUIDFromBytes((*dto.ClaimantID)[:])
		if err != nil {
			return order.ClaimRecord{}, err
		}
		rec.Claimant = &claimant
	}
	return rec, nil
}
