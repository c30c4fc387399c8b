package domain

import "strconv"

// Field names one editable attribute of a candidate form.
type Field int

const (
	FieldName Field = iota
	FieldGender
	FieldEmail
	FieldDOB
	FieldPlace
	FieldPhoneNumber
	FieldHighestEducationQualification
	FieldQualificationPassoutYear
	FieldMarksObtainedPercentage
	FieldHaveAnyExperience
	FieldResume
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldName,
	FieldGender,
	FieldEmail,
	FieldDOB,
	FieldPlace,
	FieldPhoneNumber,
	FieldHighestEducationQualification,
	FieldQualificationPassoutYear,
	FieldMarksObtainedPercentage,
	FieldHaveAnyExperience,
	FieldResume,
}

var fieldKeys = map[Field]string{
	FieldName:                          "name",
	FieldGender:                        "gender",
	FieldEmail:                         "email",
	FieldDOB:                           "dob",
	FieldPlace:                         "place",
	FieldPhoneNumber:                   "phoneNumber",
	FieldHighestEducationQualification: "highestEducationQualification",
	FieldQualificationPassoutYear:      "qualificationPassoutYear",
	FieldMarksObtainedPercentage:       "marksObtainedPercentage",
	FieldHaveAnyExperience:             "haveAnyExperience",
	FieldResume:                        "resume",
}

var fieldLabels = map[Field]string{
	FieldName:                          "Name",
	FieldGender:                        "Gender",
	FieldEmail:                         "Email",
	FieldDOB:                           "Date of Birth",
	FieldPlace:                         "Place",
	FieldPhoneNumber:                   "Phone Number",
	FieldHighestEducationQualification: "Highest Education Qualification",
	FieldQualificationPassoutYear:      "Qualification Passout Year",
	FieldMarksObtainedPercentage:       "Marks Obtained Percentage",
	FieldHaveAnyExperience:             "Experience",
	FieldResume:                        "Resume",
}

// Key is the name used on the wire and in HTML forms.
func (f Field) Key() string {
	return fieldKeys[f]
}

func (f Field) Label() string {
	return fieldLabels[f]
}

func (f Field) String() string {
	return f.Key()
}

// ParseField resolves a wire key back to its Field.
func ParseField(key string) (Field, bool) {
	for f, k := range fieldKeys {
		if k == key {
			return f, true
		}
	}
	return 0, false
}

// FieldValue renders a record field the way it is typed into a form and
// sent on the wire. The resume has no text form and yields "".
func (r CandidateRecord) FieldValue(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldGender:
		return r.Gender
	case FieldEmail:
		return r.Email
	case FieldDOB:
		return r.DOB
	case FieldPlace:
		return r.Place
	case FieldPhoneNumber:
		return r.PhoneNumber
	case FieldHighestEducationQualification:
		return r.HighestEducationQualification
	case FieldQualificationPassoutYear:
		return strconv.Itoa(r.QualificationPassoutYear)
	case FieldMarksObtainedPercentage:
		return strconv.FormatFloat(r.MarksObtainedPercentage, 'f', -1, 64)
	case FieldHaveAnyExperience:
		return strconv.FormatBool(r.HaveAnyExperience)
	}
	return ""
}
