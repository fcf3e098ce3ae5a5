package main

import (
	"fmt"

	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
)

type seedUser struct {
	reg     data.Registration
	profile data.Profile
}

func str(s string) *string { return &s }

func strs(s ...string) *[]string { return &s }

// seedUsers are five recruiters and five applicants with filled-in profiles.
var seedUsers = []seedUser{
	recruiter("recruiter1", "password1", "50000", "Software Engineer", "Experienced software engineer with a passion for building scalable applications."),
	recruiter("recruiter2", "password2", "60000", "Product Manager", "Product manager with a track record of successful product launches."),
	recruiter("recruiter3", "password3", "70000", "Data Scientist", "Data scientist with expertise in machine learning and data analysis."),
	recruiter("recruiter4", "password4", "80000", "UX Designer", "UX designer with a focus on user-centered design and usability testing."),
	recruiter("recruiter5", "password5", "90000", "Marketing Manager", "Marketing manager with experience in digital marketing and brand strategy."),
	applicant("applicant1", "password1", 1, "Bachelor's in Computer Science", "2 years in software development", "123 Main St, City, Country", "1234567890", "JavaScript", "React", "Node.js"),
	applicant("applicant2", "password2", 2, "Master's in Business Administration", "3 years in product management", "456 Elm St, City, Country", "9876543210", "Agile", "Scrum", "Product Strategy"),
	applicant("applicant3", "password3", 3, "Bachelor's in Data Science", "4 years in data analysis", "789 Oak St, City, Country", "4567891230", "Python", "Machine Learning", "SQL"),
	applicant("applicant4", "password4", 4, "Bachelor's in Design", "5 years in UX design", "321 Pine St, City, Country", "3216549870", "Figma", "User Research", "Prototyping"),
	applicant("applicant5", "password5", 5, "Master's in Marketing", "3 years in digital marketing", "654 Cedar St, City, Country", "6543210987", "SEO", "Content Marketing", "Social Media"),
}

func recruiter(name, password, salary, position, description string) seedUser {
	return seedUser{
		reg: data.Registration{UserName: name, Password: password, UserType: data.UserTypeRecruiter},
		profile: data.Profile{
			Email:       str(name + "@example.com"),
			Salary:      str(salary),
			Company:     str("Tech Corp"),
			JobPosition: str(position),
			Description: str(description),
		},
	}
}

func applicant(name, password string, n int, education, experience, address, phone string, skills ...string) seedUser {
	return seedUser{
		reg: data.Registration{UserName: name, Password: password, UserType: data.UserTypeApplicant},
		profile: data.Profile{
			Avatar:     str(fmt.Sprintf("https://example.com/avatar%d.jpg", n)),
			Email:      str(name + "@example.com"),
			Education:  strs(education),
			Experience: strs(experience),
			Skills:     strs(skills...),
			Address:    str(address),
			Phone:      str(phone),
		},
	}
}

var lorem = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.",
	"Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat.",
	"Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.",
	"Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum.",
	"Curabitur pretium tincidunt lacus.",
	"Nulla gravida orci a odio.",
	"Nullam varius, turpis et commodo pharetra, est eros bibendum elit.",
	"Aenean ut eros et nisl sagittis vestibulum.",
	"In enim justo, rhoncus ut, imperdiet a, venenatis vitae, justo.",
	"Praesent dapibus, neque id cursus faucibus, tortor neque egestas augue, eu vulputate magna eros eu erat.",
	"Aliquam erat volutpat.",
	"Phasellus iaculis neque.",
	"Phasellus leo dolor, tempus non, auctor et, hendrerit quis.",
	"Nemo enim ipsam voluptatem quia voluptas sit aspernatur aut odit aut fugit.",
	"Neque porro quisquam est, qui dolorem ipsum quia dolor sit amet, consectetur, adipisci velit.",
	"Et harum quidem rerum facilis est et expedita distinctio.",
	"Temporibus autem quibusdam et aut officiis debitis aut rerum necessitatibus saepe eveniet.",
	"Itaque earum rerum hic tenetur a sapiente delectus.",
}
