package models

import "testing"

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Ann"}
	if got := u.FullName(); got != "Ann" {
		t.Errorf("FullName() = %q, want %q", got, "Ann")
	}

	u.LastName = "Lee"
	if got := u.FullName(); got != "Ann Lee" {
		t.Errorf("FullName() = %q, want %q", got, "Ann Lee")
	}
}

func TestUserProfileURL(t *testing.T) {
	u := &User{ID: 42}
	if got := u.ProfileURL(); got != "tg://user?id=42" {
		t.Errorf("ProfileURL() = %q, want tg deep link", got)
	}

	u.Username = "ann"
	if got := u.ProfileURL(); got != "https://t.me/ann" {
		t.Errorf("ProfileURL() = %q, want t.me link", got)
	}
}

func TestParseBlockFilter(t *testing.T) {
	tests := []struct {
		arg     string
		want    BlockFilter
		wantErr bool
	}{
		{arg: "", want: FilterAll},
		{arg: "blocked", want: FilterBlocked},
		{arg: "!blocked", want: FilterNotBlocked},
		{arg: "bogus", wantErr: true},
		{arg: "Blocked", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseBlockFilter(tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseBlockFilter(%q) expected error", tt.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBlockFilter(%q) error = %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBlockFilter(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestUserInfoListTotalPages(t *testing.T) {
	tests := []struct {
		totalItems int
		want       int
	}{
		{totalItems: 0, want: 1},
		{totalItems: 1, want: 1},
		{totalItems: 5, want: 1},
		{totalItems: 6, want: 2},
		{totalItems: 12, want: 3},
		{totalItems: 15, want: 3},
	}

	for _, tt := range tests {
		list := &UserInfoList{TotalItems: tt.totalItems}
		if got := list.TotalPages(); got != tt.want {
			t.Errorf("TotalPages() with %d items = %d, want %d", tt.totalItems, got, tt.want)
		}
	}
}
