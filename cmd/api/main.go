package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/pkg/storage"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	authService "github.com/attendly/attendance-backend-go/internal/service/auth"
	employeeService "github.com/attendly/attendance-backend-go/internal/service/employee"
	"github.com/attendly/attendance-backend-go/internal/service/file"
	officeService "github.com/attendly/attendance-backend-go/internal/service/office"
	wfhService "github.com/attendly/attendance-backend-go/internal/service/wfh"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	wfhRepo := postgresql.NewWFHRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(db, employeeRepo, jwtService)
	officeSvc := officeService.NewOfficeService(db, officeRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		officeRepo,
		fileService,
		cfg.App.Timezone,
		cfg.Attendance.WFHMonthlyLimit,
		cfg.Attendance.HalfDayHours,
	)
	wfhSvc := wfhService.NewWFHService(
		db,
		wfhRepo,
		attendanceRepo,
		cfg.App.Timezone,
		cfg.Attendance.WFHMonthlyLimit,
	)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	officeHandler := appHTTP.NewOfficeHandler(officeSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	wfhHandler := appHTTP.NewWFHHandler(wfhSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		officeHandler,
		employeeHandler,
		wfhHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
