package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users      map[string]*model.User // key: user_id
	emails     map[string]string      // email → user_id
	nextID     int
	setRoleErr error // 注入角色分配失败，用于回滚测试
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[string]*model.User),
		emails: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextID++
		user.UserID = fmt.Sprintf("user-%d", m.nextID)
	}
	m.users[user.UserID] = user
	m.emails[user.Email] = user.UserID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if id, ok := m.emails[email]; ok {
		return m.users[id], nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) UpdateName(_ context.Context, id, name string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Name = name
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.emails, u.Email)
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) GetRoles(_ context.Context, userID string) ([]string, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	var names []string
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names, nil
}

// SetPrimaryRole 与真实实现一致：替换而非追加，结束后恰好一个角色
func (m *mockUserRepo) SetPrimaryRole(_ context.Context, userID string, role *model.Role) error {
	if m.setRoleErr != nil {
		return m.setRoleErr
	}
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Roles = []model.Role{*role}
	return nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles  map[string]*model.Role // key: 小写角色名
	nextID int
}

func newMockRoleRepo() *mockRoleRepo {
	m := &mockRoleRepo{roles: make(map[string]*model.Role)}
	_ = m.Seed(context.Background(), model.SeedRoleNames)
	return m
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	if r, ok := m.roles[strings.ToLower(name)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) ListNames(_ context.Context) ([]string, error) {
	var all []*model.Role
	for _, r := range m.roles {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RoleID < all[j].RoleID })
	names := make([]string, 0, len(all))
	for _, r := range all {
		names = append(names, r.Name)
	}
	return names, nil
}

func (m *mockRoleRepo) Seed(_ context.Context, names []string) error {
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := m.roles[key]; ok {
			continue
		}
		m.nextID++
		m.roles[key] = &model.Role{RoleID: m.nextID, Name: name}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[int][]model.AttendanceRecord // key: student_id
	nextID  int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[int][]model.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, studentID int, record *model.AttendanceRecord) error {
	m.nextID++
	record.ID = m.nextID
	record.StudentID = studentID
	m.records[studentID] = append(m.records[studentID], *record)
	return nil
}

// ListByStudent 与真实实现一致：日期倒序
func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID int) ([]model.AttendanceRecord, error) {
	result := make([]model.AttendanceRecord, len(m.records[studentID]))
	copy(result, m.records[studentID])
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id int) (*model.AttendanceRecord, error) {
	for _, records := range m.records {
		for i := range records {
			if records[i].ID == id {
				return &records[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

// mockStudentRepo 共享 mockAttendanceRepo 的记录，
// 模拟真实实现中查询学生时预加载考勤集合（日期倒序）
type mockStudentRepo struct {
	students map[int]*model.Student
	att      *mockAttendanceRepo
	nextID   int
}

func newMockStudentRepo(att *mockAttendanceRepo) *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int]*model.Student), att: att}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	m.nextID++
	student.ID = m.nextID
	m.students[student.ID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int) (*model.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	result := *s
	result.AttendanceRecords, _ = m.att.ListByStudent(nil, id)
	return &result, nil
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID string) (*model.Student, error) {
	for id, s := range m.students {
		if s.UserID == userID {
			return m.GetByID(nil, id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var ids []int
	for id := range m.students {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	result := make([]model.Student, 0, len(ids))
	for _, id := range ids {
		s, _ := m.GetByID(nil, id)
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStudentRepo) UpdateName(_ context.Context, id int, name string) error {
	s, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Name = name
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.students, id)
	// 外键级联：考勤记录随学生删除
	delete(m.att.records, id)
	return nil
}

// ── 组装 ──

type mockRepos struct {
	user    *mockUserRepo
	role    *mockRoleRepo
	student *mockStudentRepo
	att     *mockAttendanceRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	att := newMockAttendanceRepo()
	mocks := &mockRepos{
		user:    newMockUserRepo(),
		role:    newMockRoleRepo(),
		student: newMockStudentRepo(att),
		att:     att,
	}
	repo := &repository.Repository{
		User:       mocks.user,
		Role:       mocks.role,
		Student:    mocks.student,
		Attendance: mocks.att,
	}
	return repo, mocks
}
