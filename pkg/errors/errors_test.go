package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Is(t *testing.T) {
	errSwapMissing := New(KindNotFound, "技能交换请求不存在")
	errTicketMissing := New(KindNotFound, "答疑工单不存在")

	wrapped := fmt.Errorf("respond: %w", errSwapMissing)

	if !errors.Is(wrapped, errSwapMissing) {
		t.Error("包装后的错误应匹配原哨兵")
	}
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("应匹配 not_found 分类哨兵")
	}
	if errors.Is(wrapped, errTicketMissing) {
		t.Error("同分类但不同哨兵不应匹配")
	}
	if errors.Is(wrapped, ErrConflict) {
		t.Error("不同分类不应匹配")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("x: %w", Newf(KindConflict, "重复请求 %s", "a"))); got != KindConflict {
		t.Errorf("期望 conflict，实际=%s", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("普通错误应返回空分类，实际=%s", got)
	}
}
