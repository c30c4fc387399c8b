// Package mocks holds testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"go-candidate-admin/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CandidateUsecase struct {
	mock.Mock
}

var _ domain.CandidateUsecase = (*CandidateUsecase)(nil)

func (m *CandidateUsecase) Create(ctx context.Context, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	return m.Called(ctx, record, resume).Error(0)
}

func (m *CandidateUsecase) Get(ctx context.Context, id int64) (*domain.CandidateRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateRecord), args.Error(1)
}

func (m *CandidateUsecase) List(ctx context.Context) ([]domain.CandidateRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateRecord), args.Error(1)
}

func (m *CandidateUsecase) Update(ctx context.Context, id int64, record *domain.CandidateRecord, resume *domain.ResumeFile) error {
	return m.Called(ctx, id, record, resume).Error(0)
}

func (m *CandidateUsecase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CandidateUsecase) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *CandidateUsecase) CheckPhoneAvailability(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}
