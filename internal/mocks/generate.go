// Package mocks provides mock implementations for testing the clinic portal.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. To regenerate after interface
// changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockRepo := mocks.NewMockPatientRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "c1", "p1").Return(patient, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=patient_repository_mock.go github.com/caredesk/clinic-portal/internal/core PatientRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=appointment_repository_mock.go github.com/caredesk/clinic-portal/internal/core AppointmentRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=lab_order_repository_mock.go github.com/caredesk/clinic-portal/internal/core LabOrderRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=prescription_repository_mock.go github.com/caredesk/clinic-portal/internal/core PrescriptionRepository
