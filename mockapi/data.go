package mockapi

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tapsoran/admintui/domain"
)

// account couples an API user with its login secret and moderation state.
type account struct {
	user            domain.User
	passwordHash    []byte
	reportCount     int
	strikes         int
	chatFrozenUntil *time.Time
	createdAt       time.Time
}

const (
	// Seed credentials for local development.
	SeedAdminEmail    = "superadmin@tapsoran.az"
	SeedAdminPassword = "TapSoran@12345"
)

func mustHash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

func (s *Server) seed() {
	now := time.Now()

	admin := account{
		user: domain.User{
			Id:       uuid.NewString(),
			Role:     domain.RoleSuperAdmin,
			FullName: "TapSoran Admin",
			Email:    SeedAdminEmail,
		},
		passwordHash: mustHash(SeedAdminPassword),
		createdAt:    now.AddDate(-1, 0, 0),
	}
	buyer := account{
		user: domain.User{
			Id:       uuid.NewString(),
			Role:     domain.RoleBuyer,
			FullName: "Aysel Quliyeva",
			Email:    "aysel@example.az",
		},
		passwordHash: mustHash("buyer-pass"),
		createdAt:    now.AddDate(0, -3, 0),
	}
	seller := account{
		user: domain.User{
			Id:       uuid.NewString(),
			Role:     domain.RoleSeller,
			FullName: "Rashad Mammadov",
			Email:    "rashad@example.az",
			Tip:      "usta",
		},
		passwordHash: mustHash("seller-pass"),
		reportCount:  2,
		strikes:      1,
		createdAt:    now.AddDate(0, -2, 0),
	}
	s.accounts = []*account{&admin, &buyer, &seller}

	cat := domain.Category{Id: uuid.NewString(), Name: "Təmir"}
	s.categories = []domain.Category{
		cat,
		{Id: uuid.NewString(), Name: "Nəqliyyat"},
	}

	req := domain.RequestRow{
		Id:        uuid.NewString(),
		Title:     "Kondisioner təmiri",
		Scope:     domain.ScopeCategorySellers,
		ImageUrl:  "/uploads/requests/ac.jpg",
		CreatedAt: now.Add(-48 * time.Hour),
		Category:  &cat,
		Buyer:     &domain.UserRef{Id: buyer.user.Id, FullName: buyer.user.FullName},
	}
	s.requests = []domain.RequestRow{req}

	conv := domain.Conversation{
		Id:        uuid.NewString(),
		UserAId:   buyer.user.Id,
		UserBId:   seller.user.Id,
		UserA:     &domain.UserRef{Id: buyer.user.Id, FullName: buyer.user.FullName},
		UserB:     &domain.UserRef{Id: seller.user.Id, FullName: seller.user.FullName},
		CreatedAt: now.Add(-24 * time.Hour),
		AcceptedRequest: &domain.AcceptedRequest{
			Id:        uuid.NewString(),
			RequestId: req.Id,
			SellerId:  seller.user.Id,
			Request:   &req,
		},
	}
	s.conversations = []domain.Conversation{conv}
	s.messages = map[string][]domain.Message{
		conv.Id: {
			{
				Id: uuid.NewString(), ConversationId: conv.Id, SenderId: buyer.user.Id,
				Sender: &domain.UserRef{Id: buyer.user.Id, FullName: buyer.user.FullName},
				Type:   domain.MessageText, Text: "Salam, qiymət nə qədərdir?",
				CreatedAt: now.Add(-23 * time.Hour),
			},
			{
				Id: uuid.NewString(), ConversationId: conv.Id, SenderId: seller.user.Id,
				Sender: &domain.UserRef{Id: seller.user.Id, FullName: seller.user.FullName},
				Type:   domain.MessageImage, Text: "Baxın", MediaUrl: "/uploads/chat/photo-1.jpg",
				CreatedAt: now.Add(-22 * time.Hour),
			},
		},
	}

	s.complaints = []domain.Complaint{
		{
			Id:        uuid.NewString(),
			Status:    domain.ComplaintOpen,
			Reason:    "Vulqar ifadələr",
			Details:   "Chat zamanı təhqir",
			CreatedAt: now.Add(-12 * time.Hour),
			Reporter:  domain.UserRef{Id: buyer.user.Id, FullName: buyer.user.FullName},
			TargetUser: domain.ComplaintTarget{
				Id: seller.user.Id, FullName: seller.user.FullName,
				Email: seller.user.Email, ReportCount: seller.reportCount,
			},
			Request: &req,
		},
	}

	s.notifications = []domain.Notification{
		{
			Id: uuid.NewString(), Type: domain.NotificationAdminVulgar,
			Title: "Vulqar söz aşkarlandı", Body: "İstifadəçi chat-də qadağan olunmuş söz işlətdi.",
			CreatedAt: now.Add(-10 * time.Hour),
		},
		{
			Id: uuid.NewString(), Type: domain.NotificationAdminReport,
			Title: "Yeni şikayət", Body: "Rashad Mammadov haqqında yeni şikayət.",
			CreatedAt: now.Add(-11 * time.Hour),
		},
	}

	s.legal = map[domain.LegalType]domain.LegalPage{
		domain.LegalTerms:   {Type: domain.LegalTerms, Title: "İstifadəçi qaydaları", Content: "Qaydalar..."},
		domain.LegalPrivacy: {Type: domain.LegalPrivacy, Title: "Məxfilik siyasəti", Content: "Məxfilik..."},
	}
}

func (s *Server) findAccount(id string) *account {
	for _, a := range s.accounts {
		if a.user.Id == id {
			return a
		}
	}
	return nil
}

func (s *Server) findAccountByEmail(email string) *account {
	for _, a := range s.accounts {
		if a.user.Email == email {
			return a
		}
	}
	return nil
}
