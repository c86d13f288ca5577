package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/inquiry"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/message"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	AdminEmail     string
	AdminPassword  string
	CreateDemoData bool
	DemoUserPass   string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		AdminEmail:     "admin@silkline.trade",
		AdminPassword:  "Admin@123!",
		CreateDemoData: true,
		DemoUserPass:   "Test@123!",
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Companies []company.Company
	Users     []company.User
	Inquiries []inquiry.Inquiry
}

// Seed runs the complete database seeding
func Seed(cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	result := &SeedResult{}
	log.Println("Starting database seeding...")

	companies, err := seedCompanies()
	if err != nil {
		return nil, fmt.Errorf("failed to seed companies: %w", err)
	}
	result.Companies = companies

	users, err := seedUsers(cfg, companies)
	if err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	result.Users = users

	if cfg.CreateDemoData && len(companies) >= 2 {
		inquiries, err := seedDemoInquiry(companies[0], companies[1])
		if err != nil {
			return nil, fmt.Errorf("failed to seed demo inquiry: %w", err)
		}
		result.Inquiries = inquiries
	}

	log.Println("Database seeding completed successfully!")
	return result, nil
}

// SeedMinimal seeds companies and users only
func SeedMinimal(cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	cfg.CreateDemoData = false
	return Seed(cfg)
}

func seedCompanies() ([]company.Company, error) {
	seedData := []struct {
		name    string
		ctype   string
		country string
		email   string
	}{
		{"Samarkand Textiles LLC", company.TypeBuyer, "UZ", "import@samarkand-textiles.uz"},
		{"Jiangsu Silk Export Co", company.TypeSupplier, "CN", "sales@jiangsu-silk.cn"},
		{"Bukhara Trading House", company.TypeBoth, "UZ", "office@bukhara-trading.uz"},
		{"Istanbul Fabric Group", company.TypeSupplier, "TR", "export@istanbulfabric.com.tr"},
	}

	companies := make([]company.Company, 0, len(seedData))
	for _, data := range seedData {
		var existing company.Company
		err := DB.Where("name = ?", data.name).First(&existing).Error
		if err == nil {
			log.Printf("Company %s already exists, skipping", data.name)
			companies = append(companies, existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		c := company.Company{
			ID:           uuid.New(),
			Name:         data.name,
			Type:         data.ctype,
			Country:      sql.NullString{String: data.country, Valid: true},
			ContactEmail: sql.NullString{String: data.email, Valid: true},
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := DB.Create(&c).Error; err != nil {
			return nil, err
		}
		companies = append(companies, c)
		log.Printf("Company seeded: %s", data.name)
	}
	return companies, nil
}

func seedUsers(cfg *SeedConfig, companies []company.Company) ([]company.User, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	demoHash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoUserPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	type userSeed struct {
		email   string
		name    string
		role    string
		hash    []byte
		company int
	}
	seeds := []userSeed{
		{cfg.AdminEmail, "Platform Admin", "ADMIN", adminHash, 0},
	}
	for i, c := range companies {
		seeds = append(seeds, userSeed{
			email:   fmt.Sprintf("manager%d@%s", i+1, "silkline.trade"),
			name:    fmt.Sprintf("%s Manager", c.Name),
			role:    "MEMBER",
			hash:    demoHash,
			company: i,
		})
	}

	users := make([]company.User, 0, len(seeds))
	for _, s := range seeds {
		var existing company.User
		err := DB.Where("email = ?", s.email).First(&existing).Error
		if err == nil {
			log.Printf("User %s already exists, skipping", s.email)
			users = append(users, existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		u := company.User{
			ID:           uuid.New(),
			CompanyID:    companies[s.company].ID,
			Email:        s.email,
			PasswordHash: string(s.hash),
			DisplayName:  s.name,
			Role:         s.role,
			IsActive:     true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := DB.Create(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
		log.Printf("User seeded: %s", s.email)
	}
	return users, nil
}

// seedDemoInquiry creates a sample negotiation thread between a buyer and a
// supplier: one inquiry, an opening message and a pending quote.
func seedDemoInquiry(buyer, supplier company.Company) ([]inquiry.Inquiry, error) {
	var count int64
	if err := DB.Model(&inquiry.Inquiry{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		log.Println("Inquiries already present, skipping demo data")
		return nil, nil
	}

	now := time.Now()
	year := now.Year()

	var inq inquiry.Inquiry
	err := DB.Transaction(func(tx *gorm.DB) error {
		seq := inquiry.Sequence{Year: year}
		if err := tx.FirstOrCreate(&seq, inquiry.Sequence{Year: year}).Error; err != nil {
			return err
		}
		seq.LastValue++
		if err := tx.Save(&seq).Error; err != nil {
			return err
		}

		inq = inquiry.Inquiry{
			ID:                uuid.New(),
			Number:            inquiry.FormatNumber(year, seq.LastValue),
			BuyerCompanyID:    buyer.ID,
			SupplierCompanyID: supplier.ID,
			Type:              inquiry.TypeProductInquiry,
			Subject:           "Mulberry silk fabric, 19 momme",
			Message:           "Looking for 500 meters of 19 momme mulberry silk, natural white.",
			Quantity:          sql.NullInt64{Int64: 500, Valid: true},
			Unit:              sql.NullString{String: "m", Valid: true},
			Status:            inquiry.StatusQuoted,
			BuyerRead:         true,
			SupplierRead:      true,
			ExpiresAt:         now.Add(inquiry.DefaultExpiry),
			Version:           1,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Create(&inq).Error; err != nil {
			return err
		}

		opening := message.Message{
			ID:                 uuid.New(),
			ThreadKind:         message.ThreadInquiry,
			ThreadID:           inq.ID,
			SenderCompanyID:    buyer.ID,
			RecipientCompanyID: supplier.ID,
			Body:               sql.NullString{String: inq.Message, Valid: true},
			Type:               message.TypeText,
			Status:             message.StatusRead,
			CreatedAt:          now,
		}
		if err := tx.Create(&opening).Error; err != nil {
			return err
		}

		quote := inquiry.Quote{
			ID:                uuid.New(),
			InquiryID:         inq.ID,
			QuotedByCompanyID: supplier.ID,
			UnitPrice:         decimal.NewFromFloat(12.40),
			TotalPrice:        decimal.NewFromFloat(6200),
			Currency:          "USD",
			ValidUntil:        sql.NullTime{Time: now.Add(14 * 24 * time.Hour), Valid: true},
			Status:            inquiry.QuoteStatusPending,
			CreatedAt:         now,
		}
		return tx.Create(&quote).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Demo inquiry seeded: %s", inq.Number)
	return []inquiry.Inquiry{inq}, nil
}
