package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.truncateTables()
	})

	// Background steps
	sc.Step(`^an idrepo server is running$`, s.anIdrepoServerIsRunning)
	sc.Step(`^the following rows exist in "([^"]*)":$`, s.theFollowingRowsExistIn)

	// Request steps
	sc.Step(`^I (GET|POST|DELETE) "([^"]*)"$`, s.iRequest)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response JSON should be:$`, s.theResponseJSONShouldBe)
	sc.Step(`^the response should mention "([^"]*)"$`, s.theResponseShouldMention)

	// Database steps
	sc.Step(`^"([^"]*)" should have (\d+) rows?$`, s.tableShouldHaveRows)
	sc.Step(`^"([^"]*)" should have (\d+) rows? where (.+)$`, s.tableShouldHaveRowsWhere)
	sc.Step(`^column "([^"]*)" of "([^"]*)" row "([^"]*)" should be null$`, s.columnShouldBeNull)
	sc.Step(`^column "([^"]*)" of "([^"]*)" row "([^"]*)" should be "([^"]*)"$`, s.columnShouldBe)
	sc.Step(`^column "([^"]*)" of "([^"]*)" row "([^"]*)" should mention "([^"]*)"$`, s.columnShouldMention)
	sc.Step(`^column "([^"]*)" of "([^"]*)" row "([^"]*)" should not mention "([^"]*)"$`, s.columnShouldNotMention)
}

func (s *StepsContext) truncateTables() error {
	var tables []string
	err := s.tc.DB.Raw(`
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE' AND table_name <> ?
	`, migrationsTable).Scan(&tables).Error
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return nil
	}
	return s.tc.DB.Exec("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY").Error
}

// Background steps

func (s *StepsContext) anIdrepoServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

// theFollowingRowsExistIn inserts one row per table row. The header names the
// columns; empty cells are NULL.
func (s *StepsContext) theFollowingRowsExistIn(table string, rows *godog.Table) error {
	if len(rows.Rows) < 2 {
		return fmt.Errorf("table for %s needs a header and at least one row", table)
	}

	var columns []string
	for _, cell := range rows.Rows[0].Cells {
		columns = append(columns, cell.Value)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	for _, row := range rows.Rows[1:] {
		values := make([]interface{}, len(row.Cells))
		for i, cell := range row.Cells {
			if cell.Value != "" {
				values[i] = cell.Value
			}
		}
		if err := s.tc.DB.Exec(stmt, values...).Error; err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

// Request steps

func (s *StepsContext) iRequest(method, path string) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseJSONShouldBe(expected *godog.DocString) error {
	var want, got interface{}
	if err := json.Unmarshal([]byte(expected.Content), &want); err != nil {
		return fmt.Errorf("invalid expected JSON: %w", err)
	}
	if err := json.Unmarshal(s.responseBody, &got); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected %s, got %s", expected.Content, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldMention(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected response to mention %q, got %s", text, string(s.responseBody))
	}
	return nil
}

// Database steps

func (s *StepsContext) tableShouldHaveRows(table string, expected int) error {
	return s.tableShouldHaveRowsWhere(table, expected, "1 = 1")
}

func (s *StepsContext) tableShouldHaveRowsWhere(table string, expected int, where string) error {
	var count int64
	if err := s.tc.DB.Table(table).Where(where).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s where %s, got %d", expected, table, where, count)
	}
	return nil
}

func (s *StepsContext) column(column, table, id string) (*string, error) {
	var values []*string
	err := s.tc.DB.Table(table).Where("id = ?", id).Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("expected one %s row with id %s, got %d", table, id, len(values))
	}
	return values[0], nil
}

func (s *StepsContext) columnShouldBeNull(column, table, id string) error {
	value, err := s.column(column, table, id)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("expected %s.%s of %s to be null, got %q", table, column, id, *value)
	}
	return nil
}

func (s *StepsContext) columnShouldBe(column, table, id, expected string) error {
	value, err := s.column(column, table, id)
	if err != nil {
		return err
	}
	if value == nil || *value != expected {
		return fmt.Errorf("expected %s.%s of %s to be %q, got %v", table, column, id, expected, value)
	}
	return nil
}

func (s *StepsContext) columnShouldMention(column, table, id, text string) error {
	value, err := s.column(column, table, id)
	if err != nil {
		return err
	}
	if value == nil || !strings.Contains(*value, text) {
		return fmt.Errorf("expected %s.%s of %s to mention %q, got %v", table, column, id, text, value)
	}
	return nil
}

func (s *StepsContext) columnShouldNotMention(column, table, id, text string) error {
	value, err := s.column(column, table, id)
	if err != nil {
		return err
	}
	if value != nil && strings.Contains(*value, text) {
		return fmt.Errorf("expected %s.%s of %s not to mention %q, got %q", table, column, id, text, *value)
	}
	return nil
}
