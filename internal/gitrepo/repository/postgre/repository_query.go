package postgre

import (
	"fmt"
	"strings"

	repo "buildhook/internal/gitrepo/repository"
)

func (r *implRepository) buildGetOneQuery(opt repo.GetOneOptions) (string, []any) {
	var conditions []string
	var args []any
	idx := 1

	if opt.ID != "" {
		conditions = append(conditions, fmt.Sprintf("id = $%d", idx))
		args = append(args, opt.ID)
		idx++
	}
	if opt.Provider != "" {
		conditions = append(conditions, fmt.Sprintf("provider = $%d", idx))
		args = append(args, string(opt.Provider))
		idx++
	}
	if opt.GitHubRepoID != 0 {
		conditions = append(conditions, fmt.Sprintf("github_repo_id = $%d", idx))
		args = append(args, opt.GitHubRepoID)
		idx++
	}
	if opt.GitLabProjectID != 0 {
		conditions = append(conditions, fmt.Sprintf("gitlab_project_id = $%d", idx))
		args = append(args, opt.GitLabProjectID)
		idx++
	}
	if opt.Owner != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(owner) = LOWER($%d)", idx))
		args = append(args, opt.Owner)
		idx++
	}
	if opt.Name != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) = LOWER($%d)", idx))
		args = append(args, opt.Name)
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

func (r *implRepository) buildListFilter(opt repo.ListOptions) (string, []any) {
	var conditions []string
	var args []any

	if opt.Provider != "" {
		args = append(args, string(opt.Provider))
		conditions = append(conditions, fmt.Sprintf("provider = $%d", len(args)))
	}
	if opt.ActiveOnly {
		conditions = append(conditions, "active = TRUE")
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

func appendPagination(query string, args []any, limit, offset int) (string, []any) {
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
