package inventory

import (
	"time"

	"github.com/angelmondragon/labstock-backend/pkg/enums"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DemoProducts is the starter catalogue loaded when demo seeding is enabled.
func DemoProducts() []Product {
	return []Product{
		{ID: "1", Name: "Arduino Uno", MasterCount: 50, Availability: 45, CreatedAt: day(2024, time.January, 1)},
		{ID: "2", Name: "Raspberry Pi 4", MasterCount: 30, Availability: 25, CreatedAt: day(2024, time.January, 15)},
		{ID: "3", Name: "Breadboard", MasterCount: 100, Availability: 85, CreatedAt: day(2024, time.February, 1)},
		{ID: "4", Name: "LED Pack (100pcs)", MasterCount: 20, Availability: 18, CreatedAt: day(2024, time.February, 10)},
		{ID: "5", Name: "Multimeter", MasterCount: 15, Availability: 12, CreatedAt: day(2024, time.March, 1)},
	}
}

// DemoRecords pairs with DemoProducts; product counts already include them.
func DemoRecords() []Record {
	return []Record{
		{
			ID:          "1",
			ProductID:   "1",
			StudentName: "John Doe",
			USN:         "1MS21CS001",
			PhoneNumber: "9876543210",
			Section:     "A",
			TakenDate:   "2024-03-01",
			ReturnDate:  "2024-03-15",
			Type:        enums.RecordTypeBorrow,
			Quantity:    2,
			CreatedAt:   day(2024, time.March, 1),
		},
		{
			ID:          "2",
			ProductID:   "2",
			StudentName: "Jane Smith",
			USN:         "1MS21CS002",
			PhoneNumber: "9876543211",
			Section:     "B",
			TakenDate:   "2024-03-05",
			Type:        enums.RecordTypePurchase,
			Quantity:    1,
			CreatedAt:   day(2024, time.March, 5),
		},
	}
}

// SeedDemo loads the demo catalogue into s.
func SeedDemo(s *Store) {
	s.Seed(DemoProducts(), DemoRecords())
}
