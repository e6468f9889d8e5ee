package dataview

import (
	"fmt"
	"testing"
)

// ==================== 测试辅助 ====================

// fakeHost 记录控制器发出的 intent
type fakeHost struct {
	fetchedPage  int
	fetchedSize  int
	fetchCount   int
	deletedOne   string
	deletedMany  []string
	deleteCalled int
}

func (h *fakeHost) FetchPage(pageIndex, pageSize int) {
	h.fetchedPage = pageIndex
	h.fetchedSize = pageSize
	h.fetchCount++
}

func (h *fakeHost) DeleteOne(id string) {
	h.deletedOne = id
	h.deleteCalled++
}

func (h *fakeHost) DeleteMany(ids []string) {
	h.deletedMany = ids
	h.deleteCalled++
}

func newTestController(host Host) *Controller {
	return NewController(host, Options{
		Columns: []Column{
			{ID: "name", Header: "Name"},
			{ID: "brand", Header: "Brand"},
		},
		EditPath: "/products/edit",
	})
}

func makeRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			"id":    fmt.Sprintf("%d", i+1),
			"name":  fmt.Sprintf("Item %02d", i+1),
			"brand": "Acme",
		}
	}
	return records
}

// ==================== 数据装载与勾选 ====================

func TestReload_PrunesSelectionToCurrentPage(t *testing.T) {
	host := &fakeHost{}
	c := newTestController(host)

	c.Reload(makeRecords(3), 30)
	c.ToggleRowSelected("1", true)
	c.ToggleRowSelected("2", true)

	// 翻页后返回了不同的一页，旧页的勾选必须收敛掉
	next := []Record{
		{"id": "2", "name": "Item 02", "brand": "Acme"},
		{"id": "11", "name": "Item 11", "brand": "Acme"},
	}
	c.Reload(next, 30)

	if !c.IsRowSelected("2") {
		t.Fatal("仍在新页上的勾选应保留")
	}
	if c.IsRowSelected("1") {
		t.Fatal("不在新页上的勾选应被清掉")
	}
}

func TestToggleRowSelected_RejectsUnknownID(t *testing.T) {
	c := newTestController(&fakeHost{})
	c.Reload(makeRecords(2), 2)

	c.ToggleRowSelected("404", true)
	if c.IsRowSelected("404") {
		t.Fatal("不在当前页的 id 不应被勾选")
	}
}

func TestToggleAllOnPageSelected(t *testing.T) {
	c := newTestController(&fakeHost{})
	c.Reload(makeRecords(3), 3)

	c.ToggleAllOnPageSelected(true)
	if !c.AllOnPageSelected() {
		t.Fatal("全选后表头复选框应为选中态")
	}
	if got, _ := c.SelectionSummary(); got != 3 {
		t.Fatalf("全选后应有 3 行勾选，得到 %d", got)
	}

	c.ToggleAllOnPageSelected(false)
	if got, _ := c.SelectionSummary(); got != 0 {
		t.Fatalf("清空后应无勾选，得到 %d", got)
	}
}

// ==================== 过滤与批量删除范围 ====================

func TestSelectedVisibleIDs_IntersectsFilter(t *testing.T) {
	c := newTestController(&fakeHost{})
	c.Reload([]Record{
		{"id": "1", "name": "Aspirin", "brand": "Bayer"},
		{"id": "2", "name": "Paracetamol", "brand": "Acme"},
		{"id": "3", "name": "Aspirin Forte", "brand": "Bayer"},
	}, 3)

	c.ToggleRowSelected("1", true)
	c.ToggleRowSelected("2", true)

	// 过滤后 "2" 不可见，批量删除范围只剩 "1"
	c.SetGlobalFilter("aspirin")

	ids := c.SelectedVisibleIDs()
	if len(ids) != 1 || ids[0] != "1" {
		t.Fatalf("批量删除范围应为勾选∩过滤可见，得到 %v", ids)
	}

	// 勾选本身没丢，清掉过滤后恢复
	c.SetGlobalFilter("")
	if got, _ := c.SelectionSummary(); got != 2 {
		t.Fatalf("清掉过滤后勾选应恢复为 2，得到 %d", got)
	}
}

func TestColumnFilterCaseInsensitive(t *testing.T) {
	c := newTestController(&fakeHost{})
	c.Reload([]Record{
		{"id": "1", "name": "Aspirin", "brand": "Bayer"},
		{"id": "2", "name": "Ibuprofen", "brand": "Acme"},
	}, 2)

	c.SetColumnFilter("brand", "BAY")
	rows := c.VisibleRows()
	if len(rows) != 1 || rows[0].ID() != "1" {
		t.Fatalf("列过滤应不分大小写，得到 %v", rows)
	}

	c.SetColumnFilter("brand", "")
	if len(c.VisibleRows()) != 2 {
		t.Fatal("空串应清掉列过滤")
	}
}

// ==================== 排序 ====================

func TestSortStableMultiRule(t *testing.T) {
	c := newTestController(&fakeHost{})
	c.Reload([]Record{
		{"id": "1", "name": "B", "stock": 5},
		{"id": "2", "name": "A", "stock": 5},
		{"id": "3", "name": "A", "stock": 2},
	}, 3)

	c.SetSort(SortRule{Field: "name"}, SortRule{Field: "stock", Desc: true})

	rows := c.VisibleRows()
	want := []string{"2", "3", "1"}
	for i, id := range want {
		if rows[i].ID() != id {
			t.Fatalf("排序顺序错误，位置 %d 应为 %s，得到 %s", i, id, rows[i].ID())
		}
	}
}

// ==================== 分页 ====================

func TestPageCountFromServerTotal(t *testing.T) {
	c := newTestController(&fakeHost{})

	c.Reload(makeRecords(10), 25)
	if c.PageCount() != 3 {
		t.Fatalf("25 条 / 每页 10 应为 3 页，得到 %d", c.PageCount())
	}

	c.Reload(nil, 0)
	if c.PageCount() != 0 {
		t.Fatalf("无数据应为 0 页，得到 %d", c.PageCount())
	}
}

func TestRequestPage_BoundsGuard(t *testing.T) {
	host := &fakeHost{}
	c := newTestController(host)
	c.Reload(makeRecords(10), 25)

	if c.RequestPage(-1) {
		t.Fatal("负页号应被拒绝")
	}
	if c.RequestPage(3) {
		t.Fatal("越界页号应被拒绝")
	}
	if host.fetchCount != 0 {
		t.Fatal("越界请求不应发 intent")
	}

	if !c.RequestPage(2) {
		t.Fatal("合法页号应被接受")
	}
	if host.fetchedPage != 2 || host.fetchedSize != 10 {
		t.Fatalf("intent 参数错误: page=%d size=%d", host.fetchedPage, host.fetchedSize)
	}
	if c.Body() != BodyLoading {
		t.Fatal("翻页后应进入加载态")
	}
}

func TestRequestPageSize_ResetsToFirstPage(t *testing.T) {
	host := &fakeHost{}
	c := newTestController(host)
	c.Reload(makeRecords(10), 100)
	c.RequestPage(3)
	c.Reload(makeRecords(10), 100)

	if !c.RequestPageSize(50) {
		t.Fatal("允许的档位应被接受")
	}
	if c.PageIndex() != 0 {
		t.Fatalf("改每页行数后应回第 0 页，得到 %d", c.PageIndex())
	}
	if host.fetchedPage != 0 || host.fetchedSize != 50 {
		t.Fatalf("intent 参数错误: page=%d size=%d", host.fetchedPage, host.fetchedSize)
	}

	if c.RequestPageSize(13) {
		t.Fatal("不在档位里的每页行数应被拒绝")
	}
}

// ==================== 删除流程 ====================

func TestDeleteOne_ConfirmationProtocol(t *testing.T) {
	host := &fakeHost{}
	c := newTestController(host)
	c.Reload(makeRecords(3), 3)

	if c.RequestDeleteOne("404") {
		t.Fatal("不在当前页的 id 不应进入待确认")
	}

	if !c.RequestDeleteOne("2") {
		t.Fatal("行内删除应进入待确认")
	}
	if !c.HasPending() {
		t.Fatal("应有待确认删除")
	}
	if host.deleteCalled != 0 {
		t.Fatal("确认前不应发删除 intent")
	}

	// 取消：一切原样
	c.CancelPending()
	if c.HasPending() || c.Deleting() {
		t.Fatal("取消后应无待确认也无进行中")
	}

	// 再来一次并确认
	c.RequestDeleteOne("2")
	if !c.ConfirmPending() {
		t.Fatal("确认应成功")
	}
	if host.deletedOne != "2" {
		t.Fatalf("单删 intent 应带 id 2，得到 %q", host.deletedOne)
	}
	if !c.Deleting() {
		t.Fatal("确认后应进入删除进行中")
	}
}

func TestDeleteSelected_UsesVisibleSelection(t *testing.T) {
	host := &fakeHost{}
	c := newTestController(host)
	c.Reload([]Record{
		{"id": "1", "name": "Aspirin"},
		{"id": "2", "name": "Paracetamol"},
		{"id": "3", "name": "Aspirin Forte"},
	}, 3)

	if c.RequestDeleteSelected() {
		t.Fatal("空选择不应进入待确认")
	}

	c.ToggleRowSelected("1", true)
	c.ToggleRowSelected("2", true)
	c.SetGlobalFilter("aspirin")

	if !c.RequestDeleteSelected() {
		t.Fatal("有可见勾选时应进入待确认")
	}
	c.ConfirmPending()

	// "2" 被过滤掉了，不应被删
	if host.deletedOne != "1" {
		t.Fatalf("勾选∩过滤只剩一条时应走单删，得到 one=%q many=%v", host.deletedOne, host.deletedMany)
	}
}

func TestDeletingDisablesControls(t *testing.T) {
	host := &fakeHost{}
	c := newTestController(host)
	c.Reload(makeRecords(10), 30)

	c.RequestDeleteOne("1")
	c.ConfirmPending()

	// 删除进行中：勾选、翻页、再次删除全部禁用
	c.ToggleRowSelected("2", true)
	if c.IsRowSelected("2") {
		t.Fatal("删除进行中不应能勾选")
	}
	if c.CanPreviousPage() || c.CanNextPage() {
		t.Fatal("删除进行中分页按钮应禁用")
	}
	if c.RequestPage(1) {
		t.Fatal("删除进行中不应能翻页")
	}
	if c.RequestDeleteOne("2") || c.RequestDeleteSelected() {
		t.Fatal("删除进行中不应能再次发起删除")
	}
	if c.CanDeleteSelected() {
		t.Fatal("删除进行中批量删除按钮应禁用")
	}

	// 宿主回调结束后恢复
	c.FinishDelete()
	if c.Deleting() {
		t.Fatal("FinishDelete 后应退出删除进行中")
	}
	if !c.RequestPage(1) {
		t.Fatal("删除结束后应能翻页")
	}
}

// ==================== 表体状态 ====================

func TestBodyStates(t *testing.T) {
	c := newTestController(&fakeHost{})

	c.SetLoading()
	if c.Body() != BodyLoading {
		t.Fatal("加载中应为 BodyLoading")
	}

	c.SetError("Failed to load data")
	if c.Body() != BodyError {
		t.Fatal("加载失败应为 BodyError")
	}
	if c.LoadError() != "Failed to load data" {
		t.Fatalf("错误信息不匹配: %q", c.LoadError())
	}

	c.Reload(nil, 0)
	if c.Body() != BodyEmpty {
		t.Fatal("空数据应为 BodyEmpty")
	}

	c.Reload(makeRecords(2), 2)
	if c.Body() != BodyPopulated {
		t.Fatal("有数据应为 BodyPopulated")
	}

	// loading 优先级高于 error
	c.SetError("boom")
	c.SetLoading()
	if c.Body() != BodyLoading {
		t.Fatal("loading 应优先于 error")
	}
}

func TestBodyEmptyWhenFilteredOut(t *testing.T) {
	c := newTestController(&fakeHost{})
	c.Reload(makeRecords(3), 3)
	c.SetGlobalFilter("no-such-thing")

	if c.Body() != BodyEmpty {
		t.Fatal("过滤后无可见行应为 BodyEmpty")
	}
}

// ==================== 列显隐与编辑跳转 ====================

func TestToggleColumnVisibility(t *testing.T) {
	c := newTestController(&fakeHost{})

	c.ToggleColumnVisibility("brand", false)
	cols := c.VisibleColumns()
	if len(cols) != 1 || cols[0].ID != "name" {
		t.Fatalf("隐藏 brand 后应只剩 name，得到 %v", cols)
	}

	c.ToggleColumnVisibility("brand", true)
	if len(c.VisibleColumns()) != 2 {
		t.Fatal("恢复显示后应有 2 列")
	}
}

func TestEditTarget(t *testing.T) {
	c := newTestController(&fakeHost{})
	if got := c.EditTarget("42"); got != "/products/edit/42" {
		t.Fatalf("编辑跳转路径错误: %q", got)
	}
}
