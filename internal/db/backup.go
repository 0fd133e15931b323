package db

// BackupTable 描述备份文件中的逻辑表名与底层表名的对应关系。
type BackupTable struct {
	Logical string
	Table   string
}

// BackupTables 列出全部六张逻辑表，顺序即导入时删除与写入的固定顺序。
// urge_events 与 daily_checkins 的底层表名为单数，其余逻辑名与表名一致；
// 导出与导入必须使用同一份映射。
var BackupTables = []BackupTable{
	{Logical: "user_profile", Table: "user_profile"},
	{Logical: "urge_events", Table: "urge_event"},
	{Logical: "daily_checkins", Table: "daily_checkin"},
	{Logical: "progress", Table: "progress"},
	{Logical: "content_progress", Table: "content_progress"},
	{Logical: "subscription_state", Table: "subscription_state"},
}

// UnderlyingTable 返回逻辑表名对应的底层表名，未知逻辑名返回 false。
func UnderlyingTable(logical string) (string, bool) {
	for _, t := range BackupTables {
		if t.Logical == logical {
			return t.Table, true
		}
	}
	return "", false
}
