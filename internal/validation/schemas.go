package validation

import "regexp"

var (
	comEmailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.com$`)
	indianPhonePattern = regexp.MustCompile(`^[7-9][0-9]{9}$`)
	postalCodePattern  = regexp.MustCompile(`^[0-9]{6}$`)
)

func emailRules() []Rule {
	return []Rule{
		Required("Email is required."),
		Email("Email must be a valid email address"),
		Matches(comEmailPattern, "Email must be a valid email address & ends with domain .com"),
	}
}

func phoneRules() []Rule {
	return []Rule{
		Required("Phone number is required."),
		Matches(indianPhonePattern, "Phone number must be a 10-digit Indian number starting with 7, 8, or 9."),
	}
}

// Login validates the customer login form.
var Login = Schema{
	{Name: "email", Rules: emailRules()},
	{Name: "password", Rules: []Rule{
		Required("Password is required"),
		MinLen(6, "Password must have at least 6 characters"),
	}},
}

// SignUp validates the customer registration form.
var SignUp = Schema{
	{Name: "name", Rules: []Rule{
		Required("Name is required"),
		MinLen(3, "Name must be at least 3 characters"),
	}},
	{Name: "email", Rules: emailRules()},
	{Name: "password", Rules: []Rule{
		Required("Password is required"),
		MinLen(6, "Password must have at least 6 characters"),
		MaxLen(10, "Password must have characters in between 6 to 10"),
	}},
	{Name: "phone", Rules: phoneRules()},
}

// Checkout validates the shipping and contact form submitted before payment.
var Checkout = Schema{
	{Name: "countrySelect", Rules: []Rule{Required("Country name is required.")}},
	{Name: "firstname", Rules: []Rule{
		Required("First name is required."),
		MinLen(3, "First name must be at least 3 characters."),
	}},
	{Name: "lastname", Rules: []Rule{
		Required("Last name is required."),
		MinLen(3, "Last name must be at least 3 characters."),
	}},
	{Name: "address", Rules: []Rule{
		Required("Address is required."),
		MinLen(3, "Address must be at least 3 characters."),
	}},
	{Name: "town", Rules: []Rule{
		Required("Town or city is required."),
		MinLen(3, "Town or city must be at least 3 characters."),
	}},
	{Name: "state", Rules: []Rule{
		Required("State is required."),
		MinLen(3, "State name must have at least 3 characters."),
	}},
	{Name: "postalcode", Rules: []Rule{
		Required("Zip/Postal code is required."),
		Matches(postalCodePattern, "Zip / Postal code must be at least 6 numbers."),
	}},
	{Name: "email", Rules: emailRules()},
	{Name: "phoneno", Rules: phoneRules()},
}
