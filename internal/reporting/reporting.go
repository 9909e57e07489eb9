package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/Moadjaafar/GESTION-LTIPM/internal/models"
	"gorm.io/gorm"
)

// TrackingRow is one line of the voyage tracking report. A voyage with a
// secondary société fans out into two rows, one per société; the voyage
// itself stays a single record.
type TrackingRow struct {
	BookingReference  string              `json:"booking_reference"`
	VoyageNumber      int                 `json:"voyage_number"`
	NumeroTC          string              `json:"numero_tc"`
	SocietyName       string              `json:"society_name"`
	Slot              string              `json:"slot"` // "principal" or "secondary"
	DepartureCity     *string             `json:"departure_city,omitempty"`
	DepartureDate     *time.Time          `json:"departure_date,omitempty"`
	ReceptionDate     *time.Time          `json:"reception_date,omitempty"`
	ReturnArrivalCity *string             `json:"return_arrival_city,omitempty"`
	ReturnArrivalDate *time.Time          `json:"return_arrival_date,omitempty"`
	Price             *float64            `json:"price,omitempty"`
	Currency          string              `json:"currency"`
	Status            models.VoyageStatus `json:"status"`
}

type TrackingFilter struct {
	Search string
	From   *time.Time
	To     *time.Time
}

type DashboardStats struct {
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	VoyagesByStatus  map[string]int64 `json:"voyages_by_status"`
	BookingsByType   map[string]int64 `json:"bookings_by_type"`
	ActiveSocieties  int64            `json:"active_societies"`
	ActiveCamions    int64            `json:"active_camions"`
}

// Service is the read-only projection layer consumed by handlers. The
// lifecycle engines never call into it.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type voyageJoin struct {
	models.Voyage
	BookingReference string
	PrincipalName    string
	SecondaryName    *string
}

func (s *Service) VoyageTracking(ctx context.Context, filter TrackingFilter) ([]TrackingRow, error) {
	q := s.db.WithContext(ctx).
		Table("voyages").
		Select(`voyages.*,
			bookings.booking_reference AS booking_reference,
			principal.name AS principal_name,
			secondary.name AS secondary_name`).
		Joins("JOIN bookings ON bookings.id = voyages.booking_id").
		Joins("JOIN societies principal ON principal.id = voyages.society_principale_id").
		Joins("LEFT JOIN societies secondary ON secondary.id = voyages.society_secondaire_id").
		Order("bookings.booking_reference ASC, voyages.voyage_number ASC")

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"bookings.booking_reference LIKE ? OR voyages.numero_tc LIKE ? OR principal.name LIKE ? OR secondary.name LIKE ?",
			like, like, like, like)
	}
	if filter.From != nil {
		q = q.Where("voyages.departure_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("voyages.departure_date <= ?", *filter.To)
	}

	var joined []voyageJoin
	if err := q.Scan(&joined).Error; err != nil {
		return nil, err
	}

	rows := make([]TrackingRow, 0, len(joined))
	for _, v := range joined {
		rows = append(rows, TrackingRow{
			BookingReference:  v.BookingReference,
			VoyageNumber:      v.VoyageNumber,
			NumeroTC:          v.NumeroTC,
			SocietyName:       v.PrincipalName,
			Slot:              "principal",
			DepartureCity:     v.DepartureCity,
			DepartureDate:     v.DepartureDate,
			ReceptionDate:     v.ReceptionDate,
			ReturnArrivalCity: v.ReturnArrivalCity,
			ReturnArrivalDate: v.ReturnArrivalDate,
			Price:             v.PricePrincipale,
			Currency:          v.Currency,
			Status:            v.Status,
		})
		if v.SocietySecondaireID != nil && v.SecondaryName != nil {
			rows = append(rows, TrackingRow{
				BookingReference:  v.BookingReference,
				VoyageNumber:      v.VoyageNumber,
				NumeroTC:          v.NumeroTC,
				SocietyName:       *v.SecondaryName,
				Slot:              "secondary",
				DepartureCity:     v.DepartureCity,
				DepartureDate:     v.DepartureDate,
				ReceptionDate:     v.ReceptionDate,
				ReturnArrivalCity: v.ReturnArrivalCity,
				ReturnArrivalDate: v.ReturnArrivalDate,
				Price:             v.PriceSecondaire,
				Currency:          v.Currency,
				Status:            v.Status,
			})
		}
	}
	return rows, nil
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		BookingsByStatus: map[string]int64{},
		VoyagesByStatus:  map[string]int64{},
		BookingsByType:   map[string]int64{},
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var buckets []bucket
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Select("status AS key, COUNT(*) AS count").Group("status").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		stats.BookingsByStatus[b.Key] = b.Count
	}

	buckets = nil
	if err := s.db.WithContext(ctx).Model(&models.Voyage{}).
		Select("status AS key, COUNT(*) AS count").Group("status").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		stats.VoyagesByStatus[b.Key] = b.Count
	}

	buckets = nil
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Select("type_voyage AS key, COUNT(*) AS count").Group("type_voyage").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		stats.BookingsByType[b.Key] = b.Count
	}

	if err := s.db.WithContext(ctx).Model(&models.Society{}).
		Where("is_active = ?", true).Count(&stats.ActiveSocieties).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Camion{}).
		Where("is_active = ?", true).Count(&stats.ActiveCamions).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
