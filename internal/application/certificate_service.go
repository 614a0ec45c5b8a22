package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/internal/domain/certificate"
	"github.com/emprendevoz/emprende-api/internal/domain/entity"
	repo "github.com/emprendevoz/emprende-api/internal/domain/repository"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

// CertificateView is one catalog module as seen by a user.
type CertificateView struct {
	certificate.Module
	Completed   bool                `json:"completed"`
	Certificate *certificate.Signed `json:"certificate"`
}

type MintResult struct {
	Certificate   certificate.Signed `json:"certificate"`
	ModuleID      string             `json:"module_id"`
	WalletAddress string             `json:"wallet_address"`
	MintedAt      time.Time          `json:"minted_at"`
	TokenID       string             `json:"token_id"`
}

type CertificateService struct {
	Certificates repo.CertificateRepository
	Learning     repo.LearningRepository
	Profiles     repo.ProfileRepository
	Sessions     SessionStore
	Storage      ObjectStore
	Events       EventPublisher
	Notifier     *Notifier
	Logger       *logrus.Logger
	Now          func() time.Time
}

func NewCertificateService(certs repo.CertificateRepository, learning repo.LearningRepository, profiles repo.ProfileRepository, sessions SessionStore, storage ObjectStore, publisher EventPublisher, notifier *Notifier, logger *logrus.Logger) *CertificateService {
	return &CertificateService{
		Certificates: certs,
		Learning:     learning,
		Profiles:     profiles,
		Sessions:     sessions,
		Storage:      storage,
		Events:       publisher,
		Notifier:     notifier,
		Logger:       logger,
		Now:          time.Now,
	}
}

func signedFrom(c *entity.Certificate) (*certificate.Signed, error) {
	var r certificate.Record
	if err := json.Unmarshal([]byte(c.Payload), &r); err != nil {
		return nil, fmt.Errorf("decode certificate %s: %w", c.ID, err)
	}
	return &certificate.Signed{Cert: r, Hash: c.Hash}, nil
}

func (s *CertificateService) progress(ctx context.Context, userID string) ([]CourseProgress, error) {
	counts, err := s.Learning.CourseCounts(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return courseProgress(counts), nil
}

// List returns the catalog, issuing certificates for completed modules that lack one.
func (s *CertificateService) List(ctx context.Context, userID string) ([]CertificateView, error) {
	progress, err := s.progress(ctx, userID)
	if err != nil {
		return nil, err
	}
	issued, err := s.Certificates.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byModule := make(map[string]*entity.Certificate, len(issued))
	for i := range issued {
		byModule[issued[i].ModuleID] = &issued[i]
	}

	out := make([]CertificateView, 0, len(certificate.Modules))
	for _, m := range certificate.Modules {
		v, err := s.ensure(ctx, userID, m, progress, byModule[m.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *CertificateService) IssueIfComplete(ctx context.Context, userID, moduleID string) (*CertificateView, error) {
	m, ok := certificate.FindModule(moduleID)
	if !ok {
		return nil, ErrNotFound
	}
	progress, err := s.progress(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Certificates.Get(ctx, userID, moduleID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return s.ensure(ctx, userID, m, progress, existing)
}

// ensure returns the view for m, issuing the certificate when the module is
// complete and none exists yet.
func (s *CertificateService) ensure(ctx context.Context, userID string, m certificate.Module, progress []CourseProgress, existing *entity.Certificate) (*CertificateView, error) {
	v := &CertificateView{Module: m, Completed: moduleComplete(progress, m.ID)}
	if existing != nil {
		signed, err := signedFrom(existing)
		if err != nil {
			return nil, err
		}
		v.Completed = true
		v.Certificate = signed
		return v, nil
	}
	if !v.Completed {
		return v, nil
	}
	signed, err := s.issue(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	v.Certificate = signed
	return v, nil
}

func (s *CertificateService) issue(ctx context.Context, userID string, m certificate.Module) (*certificate.Signed, error) {
	at := s.Now().UTC().Truncate(time.Millisecond)
	signed, err := certificate.Issue(m.ID, m.Title, userID, at)
	if err != nil {
		return nil, err
	}
	payload, err := certificate.Canonical(signed.Cert)
	if err != nil {
		return nil, err
	}
	c := &entity.Certificate{UserID: userID, ModuleID: m.ID, Payload: string(payload), Hash: signed.Hash, IssuedAt: at}
	err = s.Certificates.Create(ctx, c)
	if errors.Is(err, repo.ErrConflict) {
		// issued concurrently; the stored one wins
		stored, gerr := s.Certificates.Get(ctx, userID, m.ID)
		if gerr != nil {
			return nil, gerr
		}
		return signedFrom(stored)
	}
	if err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "module_id": m.ID}).Error("store certificate failed")
		return nil, err
	}

	s.Events.Publish(ctx, entity.EventCertificateIssued, userID, map[string]any{
		"module_id": m.ID,
		"hash":      signed.Hash,
	})
	if p, perr := s.Profiles.GetByID(ctx, userID); perr == nil {
		s.Notifier.CertificateIssued(ctx, p, m.ID, m.Title, signed.Hash, at)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "module_id": m.ID}).Info("certificate issued")
	return &signed, nil
}

// owned returns the user's certificate for moduleID, issuing it if the module is complete.
func (s *CertificateService) owned(ctx context.Context, userID, moduleID string) (*certificate.Signed, *entity.Certificate, error) {
	v, err := s.IssueIfComplete(ctx, userID, moduleID)
	if err != nil {
		return nil, nil, err
	}
	if v.Certificate == nil {
		return nil, nil, ErrModuleIncomplete
	}
	c, err := s.Certificates.Get(ctx, userID, moduleID)
	if err != nil {
		return nil, nil, err
	}
	return v.Certificate, c, nil
}

// Download renders the certificate file and archives the first copy to object storage.
func (s *CertificateService) Download(ctx context.Context, userID, moduleID string) (string, []byte, error) {
	signed, stored, err := s.owned(ctx, userID, moduleID)
	if err != nil {
		return "", nil, err
	}
	body, err := certificate.MarshalDownload(*signed)
	if err != nil {
		return "", nil, err
	}
	name := certificate.DownloadFilename(moduleID, s.Now())

	if stored.ArchiveURL == "" && s.Storage != nil {
		url, err := s.Storage.Upload(ctx, path.Join("certificates", userID, name), "application/json", bytes.NewReader(body))
		switch {
		case errors.Is(err, helpers.ErrStorageDisabled):
		case err != nil:
			s.Logger.WithError(err).WithField("module_id", moduleID).Warn("archive certificate failed")
		default:
			if err := s.Certificates.SetArchiveURL(ctx, stored.ID, url); err != nil {
				s.Logger.WithError(err).Warn("save archive url failed")
			}
		}
	}
	return name, body, nil
}

// Verify checks a presented certificate byte-for-byte against its digest.
func (s *CertificateService) Verify(presented certificate.Presented) bool {
	return presented.Valid()
}

// Mint records the certificate against the wallet in the caller's session.
// Minting the same module to the same wallet again returns the first record.
func (s *CertificateService) Mint(ctx context.Context, userID, moduleID string) (*MintResult, error) {
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess.WalletAddress == "" {
		return nil, ErrWalletRequired
	}
	signed, _, err := s.owned(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}

	m, err := s.Certificates.GetMint(ctx, moduleID, sess.WalletAddress)
	if errors.Is(err, repo.ErrNotFound) {
		now := s.Now().UTC()
		m = &entity.NFTMint{
			UserID:          userID,
			ModuleID:        moduleID,
			WalletAddress:   sess.WalletAddress,
			TokenID:         fmt.Sprintf("NFT-%s-%d", moduleID, now.UnixMilli()),
			CertificateHash: signed.Hash,
			MintedAt:        now,
		}
		err = s.Certificates.CreateMint(ctx, m)
		if errors.Is(err, repo.ErrConflict) {
			m, err = s.Certificates.GetMint(ctx, moduleID, sess.WalletAddress)
		}
	}
	if err != nil {
		return nil, err
	}
	return &MintResult{
		Certificate:   *signed,
		ModuleID:      m.ModuleID,
		WalletAddress: m.WalletAddress,
		MintedAt:      m.MintedAt,
		TokenID:       m.TokenID,
	}, nil
}
