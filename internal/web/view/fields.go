package view

type field struct {
	Name         string
	Label        string
	Type         string
	Autocomplete string
}

var (
	loginFields = []field{
		{Name: "email", Label: "Email", Type: "email", Autocomplete: "email"},
		{Name: "password", Label: "Password", Type: "password", Autocomplete: "current-password"},
	}
	registerFields = []field{
		{Name: "fullName", Label: "Full name", Type: "text", Autocomplete: "name"},
		{Name: "email", Label: "Email", Type: "email", Autocomplete: "email"},
		{Name: "password", Label: "Password", Type: "password", Autocomplete: "new-password"},
		{Name: "confirmPassword", Label: "Confirm password", Type: "password", Autocomplete: "new-password"},
	}
	forgotPasswordFields = []field{
		{Name: "email", Label: "Email", Type: "email", Autocomplete: "email"},
	}
	resetPasswordFields = []field{
		{Name: "password", Label: "New password", Type: "password", Autocomplete: "new-password"},
		{Name: "confirmPassword", Label: "Confirm new password", Type: "password", Autocomplete: "new-password"},
	}
)
