package repository

import (
	"context"

	"github.com/iliyamo/concert-ticketing/internal/model"
)

// StaticConcertRepo serves a fixed, in-memory catalog.  Returned values are
// copies so callers cannot alter the catalog.
type StaticConcertRepo struct {
	concerts []model.Concert
}

// NewStaticConcertRepo returns a catalog over the given concerts, or over
// DefaultConcerts when none are given.
func NewStaticConcertRepo(concerts ...model.Concert) *StaticConcertRepo {
	if len(concerts) == 0 {
		concerts = DefaultConcerts()
	}
	return &StaticConcertRepo{concerts: concerts}
}

func cloneConcert(c model.Concert) model.Concert {
	c.Tiers = append([]model.TicketTier(nil), c.Tiers...)
	return c
}

// ListAll returns every concert in catalog order.
func (r *StaticConcertRepo) ListAll(_ context.Context) ([]model.Concert, error) {
	out := make([]model.Concert, 0, len(r.concerts))
	for _, c := range r.concerts {
		out = append(out, cloneConcert(c))
	}
	return out, nil
}

// GetByID returns the concert with the given id or ErrConcertNotFound.
func (r *StaticConcertRepo) GetByID(_ context.Context, id string) (*model.Concert, error) {
	for _, c := range r.concerts {
		if c.ID == id {
			cc := cloneConcert(c)
			return &cc, nil
		}
	}
	return nil, ErrConcertNotFound
}

// DefaultConcerts is the built-in storefront catalog.
func DefaultConcerts() []model.Concert {
	return []model.Concert{
		{
			ID:          "1",
			Title:       "RAISA Live in Concert",
			Artist:      "Raisa Andriana",
			Date:        "2025-02-14",
			Time:        "19:00",
			Venue:       "Indonesia Convention Exhibition (ICE)",
			City:        "BSD City, Tangerang",
			Image:       "https://images.unsplash.com/photo-1540039155733-5bb30b53aa14?w=800&q=80",
			Description: "Saksikan penampilan memukau Raisa dalam konser Valentine spesial dengan setlist lagu-lagu hits terbaik.",
			Tiers: []model.TicketTier{
				{ID: "t1", Name: "Festival", Price: 350000, Description: "Area berdiri, akses masuk biasa", Available: 500},
				{ID: "t2", Name: "Tribune", Price: 750000, Description: "Tempat duduk tribun dengan view bagus", Available: 300},
				{ID: "t3", Name: "VIP", Price: 1500000, Description: "Tempat duduk premium, merchandise eksklusif", Available: 100},
				{ID: "t4", Name: "VVIP", Price: 2500000, Description: "Front row, meet & greet, merchandise eksklusif", Available: 50},
			},
		},
		{
			ID:          "2",
			Title:       "TULUS - Manusia Tour",
			Artist:      "Tulus",
			Date:        "2025-03-08",
			Time:        "20:00",
			Venue:       "Gelora Bung Karno",
			City:        "Jakarta",
			Image:       "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800&q=80",
			Description: "Tur konser nasional Tulus dengan album terbaru 'Manusia'. Pengalaman musikal yang tak terlupakan.",
			Tiers: []model.TicketTier{
				{ID: "t5", Name: "CAT 3", Price: 450000, Description: "Area berdiri tribun atas", Available: 1000},
				{ID: "t6", Name: "CAT 2", Price: 850000, Description: "Tribun tengah dengan view optimal", Available: 600},
				{ID: "t7", Name: "CAT 1", Price: 1200000, Description: "Tribun bawah dekat panggung", Available: 400},
				{ID: "t8", Name: "Platinum", Price: 2000000, Description: "Golden circle area", Available: 150},
			},
		},
		{
			ID:          "3",
			Title:       "BERNADYA - Itu Saja Tour",
			Artist:      "Bernadya",
			Date:        "2025-04-12",
			Time:        "19:30",
			Venue:       "Tennis Indoor Senayan",
			City:        "Jakarta",
			Image:       "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?w=800&q=80",
			Description: "Konser perdana Bernadya dengan lagu-lagu hits seperti 'Untungnya, Hidup Harus Tetap Berjalan' dan 'Apa Mungkin'.",
			Tiers: []model.TicketTier{
				{ID: "t9", Name: "Silver", Price: 400000, Description: "Tribun atas", Available: 800},
				{ID: "t10", Name: "Gold", Price: 750000, Description: "Tribun tengah", Available: 500},
				{ID: "t11", Name: "Diamond", Price: 1350000, Description: "Area premium dekat panggung", Available: 200},
			},
		},
		{
			ID:          "4",
			Title:       "COLDPLAY - Music of the Spheres",
			Artist:      "Coldplay",
			Date:        "2025-05-20",
			Time:        "19:00",
			Venue:       "Gelora Bung Karno Stadium",
			City:        "Jakarta",
			Image:       "https://images.unsplash.com/photo-1470229722913-7c0e2dbbafd3?w=800&q=80",
			Description: "Konser spektakuler Coldplay dengan visual memukau dan pengalaman immersive yang luar biasa.",
			Tiers: []model.TicketTier{
				{ID: "t12", Name: "Festival A", Price: 1500000, Description: "Standing area zona A", Available: 2000},
				{ID: "t13", Name: "Festival B", Price: 1200000, Description: "Standing area zona B", Available: 3000},
				{ID: "t14", Name: "CAT 2", Price: 2500000, Description: "Seated tribun tengah", Available: 1500},
				{ID: "t15", Name: "CAT 1", Price: 3500000, Description: "Seated tribun bawah", Available: 800},
				{ID: "t16", Name: "Infinity", Price: 5000000, Description: "Premium experience package", Available: 200},
			},
		},
		{
			ID:          "5",
			Title:       "NADIN AMIZAH - Selamat Ulang Tahun",
			Artist:      "Nadin Amizah",
			Date:        "2025-03-25",
			Time:        "19:00",
			Venue:       "The Kasablanka Hall",
			City:        "Jakarta",
			Image:       "https://images.unsplash.com/photo-1501386761578-eac5c94b800a?w=800&q=80",
			Description: "Rayakan momen spesial bersama Nadin Amizah dalam konser intimate dengan suasana hangat.",
			Tiers: []model.TicketTier{
				{ID: "t17", Name: "Regular", Price: 350000, Description: "General admission", Available: 400},
				{ID: "t18", Name: "Premium", Price: 650000, Description: "Seated area dengan view lebih baik", Available: 250},
				{ID: "t19", Name: "VIP", Price: 1100000, Description: "Front area + merchandise bundle", Available: 100},
			},
		},
		{
			ID:          "6",
			Title:       "WEIRD GENIUS - Big Bang Tour",
			Artist:      "Weird Genius",
			Date:        "2025-04-05",
			Time:        "21:00",
			Venue:       "Beach City International Stadium",
			City:        "Ancol, Jakarta",
			Image:       "https://images.unsplash.com/photo-1571266028243-e4733b0f0bb0?w=800&q=80",
			Description: "Festival musik EDM terbesar dengan Weird Genius sebagai headline. Siap bergoyang sepanjang malam!",
			Tiers: []model.TicketTier{
				{ID: "t20", Name: "Early Bird", Price: 250000, Description: "General admission (terbatas)", Available: 100},
				{ID: "t21", Name: "Presale", Price: 350000, Description: "General admission", Available: 1500},
				{ID: "t22", Name: "VIP Lounge", Price: 800000, Description: "Akses VIP area + free drinks", Available: 200},
			},
		},
	}
}
