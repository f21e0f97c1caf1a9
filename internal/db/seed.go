package db

import (
	"fmt"

	"gorm.io/gorm"

	"sciequip-backend/internal/model"
)

// BrandLogoURL is the institutional logo served with the home page config.
const BrandLogoURL = "https://upload.wikimedia.org/wikipedia/vi/2/25/Logo_%C4%90%E1%BA%A1i_h%E1%BB%8Dc_Y_D%C6%B0%E1%BB%A3c_C%E1%BA%A7n_Th%C6%A1.png"

// Seed inserts the demo dataset. It is idempotent: nothing is written when
// the user table already has rows.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := []model.User{
			{
				ID: "adminctump", Name: "Quản Trị Viên Hệ Thống",
				Email: "tmthiet@ctump.edu.vn", Phone: "0909.123.456",
				Role: model.RoleAdmin, Department: "Khoa Cơ Bản",
				Password: "adminctump",
			},
			{
				ID: "u2", Name: "Trần Thị Nhân Viên",
				Email: "nhanvien@ctump.edu.vn", Phone: "0912.333.444",
				Role: model.RoleStaff, Department: "Phòng Lab Hóa",
				Password: "123@",
			},
			{
				ID: "u3", Name: "Lê Văn Sinh Viên",
				Email: "sinhvien@ctump.edu.vn",
				Role: model.RoleStudent, Department: "Lớp KTPM",
				Password: "123@",
			},
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		equipment := []model.Equipment{
			{
				ID: "e1", Name: "Kính Hiển Vi Điện Tử Olympus CX23", Code: "KHV-001",
				Unit: "Cái", Origin: "Nhật Bản", Quantity: 1, YearOfUse: 2021,
				Depreciation: "10%", Receiver: "Nguyễn Văn A",
				UsingDepartment: "Bộ môn Sinh học", Model: "Olympus CX23",
				Serial: "SN-998877", Provider: "Thiết Bị Y Tế ABC",
				ReceiveDate: "2021-01-15", Price: 15000000,
				ManagerID: "adminctump", Location: "Lab 101",
				Status: model.StatusAvailable,
				Images: []string{"https://images.unsplash.com/photo-1582719508461-905c673771fd?auto=format&fit=crop&q=80&w=320"},
				Notes:  "Kính hiển vi độ phân giải cao.",
			},
			{
				ID: "e2", Name: "Máy Ly Tâm Lạnh Hettich", Code: "MLT-002",
				Unit: "Chiếc", Origin: "Đức", Quantity: 1, YearOfUse: 2022,
				Price: 45000000, ManagerID: "u2", Location: "Lab 102",
				Status: model.StatusMaintenance, ReceiveDate: "2022-03-10",
				Images: []string{"https://images.unsplash.com/photo-1579154204601-01588f351e67?auto=format&fit=crop&q=80&w=320"},
				Notes:  "Đang đợi thay chổi than.",
			},
		}
		if err := tx.Create(&equipment).Error; err != nil {
			return err
		}

		labs := []model.Lab{
			{
				ID: "l1", Name: "Phòng Thí Nghiệm Hóa Sinh",
				Description:   "Chuyên nghiên cứu về các hợp chất tự nhiên, phân tích định lượng.",
				DetailContent: "Trang bị máy sắc ký lỏng (HPLC), máy quang phổ UV-Vis.",
				Images:        []string{"https://images.unsplash.com/photo-1532094349884-543bc11b234d?auto=format&fit=crop&q=80&w=600"},
				LocationCode:  "Lab 101",
			},
		}
		if err := tx.Create(&labs).Error; err != nil {
			return err
		}

		home := model.HomePageConfig{
			ID:                   1,
			AppName:              "QUẢN LÝ TB KHOA KHOA HỌC CƠ BẢN",
			Logo:                 BrandLogoURL,
			HeroTitle:            "KHOA KHOA HỌC CƠ BẢN",
			HeroSubtitle:         "TRƯỜNG ĐẠI HỌC Y DƯỢC CẦN THƠ",
			IntroTitle:           "Giới thiệu chung",
			IntroContent:         "Khoa Khoa Học Cơ Bản là đơn vị nòng cốt trong việc giảng dạy các môn khoa học nền tảng...",
			FeaturedTitle:        "Trang thiết bị tiêu biểu",
			FeaturedEquipmentIDs: []string{"e1", "e2"},
			LabsTitle:            "Các Phòng Thí Nghiệm & Nghiên Cứu",
			VisitorCount:         15300,
		}
		return tx.Create(&home).Error
	})
}
