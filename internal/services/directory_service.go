package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-taskboard/internal/models"
)

// directoryServiceImpl is a read-only lookup table over members and projects.
type directoryServiceImpl struct {
	logger   zerolog.Logger
	members  []*models.Member
	projects []*models.Project
}

func NewDirectoryService(
	logger zerolog.Logger,
	members []*models.Member,
	projects []*models.Project,
) DirectoryService {
	return &directoryServiceImpl{
		logger:   logger,
		members:  members,
		projects: projects,
	}
}

func (s *directoryServiceImpl) GetMember(_ context.Context, id string) (*models.Member, error) {
	for _, m := range s.members {
		if m.ID == id {
			member := *m
			return &member, nil
		}
	}
	s.logger.Debug().
		Str("member_id", id).
		Msg("member not found")
	return nil, ErrMemberNotFound
}

func (s *directoryServiceImpl) GetMemberByEmail(_ context.Context, email string) (*models.Member, error) {
	for _, m := range s.members {
		if strings.EqualFold(m.Email, email) {
			member := *m
			return &member, nil
		}
	}
	s.logger.Debug().
		Str("email", email).
		Msg("member not found")
	return nil, ErrMemberNotFound
}

func (s *directoryServiceImpl) ListMembers(_ context.Context) ([]*models.Member, error) {
	members := make([]*models.Member, len(s.members))
	for i, m := range s.members {
		member := *m
		members[i] = &member
	}
	return members, nil
}

func (s *directoryServiceImpl) GetProject(_ context.Context, id string) (*models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			project := *p
			return &project, nil
		}
	}
	s.logger.Debug().
		Str("project_id", id).
		Msg("project not found")
	return nil, ErrProjectNotFound
}

func (s *directoryServiceImpl) ListProjects(_ context.Context) ([]*models.Project, error) {
	projects := make([]*models.Project, len(s.projects))
	for i, p := range s.projects {
		project := *p
		projects[i] = &project
	}
	return projects, nil
}

func (s *directoryServiceImpl) ResolveAssignees(ctx context.Context, ids []string) []*models.Member {
	members := make([]*models.Member, 0, len(ids))
	for _, id := range ids {
		m, err := s.GetMember(ctx, id)
		if err != nil {
			continue
		}
		members = append(members, m)
	}
	return members
}
