package database

import (
	"context"
	"database/sql"
	"fmt"

	"ewaste-exchange-go/internal/models"
	"ewaste-exchange-go/internal/store"

	"go.uber.org/zap"
)

// CreateProfile inserts a new actor profile. The identity layer assigns ids
// and roles; the store trusts them as given.
func (s *Service) CreateProfile(ctx context.Context, profileId, name, email, role string) (*models.Profile, error) {
	if role != models.RoleUser && role != models.RoleOfficial {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	_, err := s.db.ExecContext(ctx, queryInsertProfile, profileId, name, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	zap.L().Info("Profile created",
		zap.String("profile_id", profileId),
		zap.String("name", name),
		zap.String("role", role))

	s.notify(store.TableProfiles)
	return s.GetProfile(ctx, profileId)
}

// GetProfile returns a profile by id, or ErrProfileNotFound.
func (s *Service) GetProfile(ctx context.Context, profileId string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx, queryGetProfileById, profileId).
		Scan(&p.Id, &p.Name, &p.Email, &p.Role, &p.WalletAddress, &p.CryptoVerified, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// GetProfileByEmail returns a profile by email, or ErrProfileNotFound.
func (s *Service) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx, queryGetProfileByEmail, email).
		Scan(&p.Id, &p.Name, &p.Email, &p.Role, &p.WalletAddress, &p.CryptoVerified, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &p, nil
}

// ListProfiles returns all profiles ordered by creation time.
func (s *Service) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, queryListProfiles)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		err := rows.Scan(&p.Id, &p.Name, &p.Email, &p.Role, &p.WalletAddress, &p.CryptoVerified, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, nil
}

// SaveWalletAddress stores an actor's wallet address and verification flag.
func (s *Service) SaveWalletAddress(ctx context.Context, profileId, address string, verified bool) (*models.Profile, error) {
	result, err := s.db.ExecContext(ctx, querySaveWalletAddress, address, verified, profileId)
	if err != nil {
		return nil, fmt.Errorf("failed to save wallet address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, store.ErrProfileNotFound
	}

	zap.L().Info("Wallet address saved",
		zap.String("profile_id", profileId),
		zap.String("wallet_address", address),
		zap.Bool("verified", verified))

	s.notify(store.TableProfiles)
	return s.GetProfile(ctx, profileId)
}
